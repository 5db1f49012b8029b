// larkc is a console utility compiling grammar definitions to Go or JSON files.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TMiguelT/lark/grammar"
	"github.com/TMiguelT/lark/langdef"
	"github.com/TMiguelT/lark/source"
)

var (
	generateJson bool
	verbose      bool
	outFileName  string
	packageName  string
	varName      string
	startName    string
	includeDirs  []string
)

var rootCmd = &cobra.Command{
	Use:   "larkc [flags] <file>",
	Short: "compile a grammar definition to a Go source or JSON file",
	Long: `larkc compiles a grammar definition file and writes the resulting
grammar model either as a Go source file holding a composite literal or,
with -j, as a JSON document.

%import statements are resolved against the bundled fragments, the input
file's directory, and any directories given with -I: the path a.b maps
to the file a/b.lark.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&generateJson, "json", "j", false, "output JSON instead of Go")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log compilation stages")
	flags.StringVarP(&outFileName, "out", "o", "", "output file name, default is the input name with .go or .json suffix")
	flags.StringVarP(&packageName, "package", "p", "", "Go package name, default is the output file's directory name")
	flags.StringVar(&varName, "var", "", "Go variable name, default is derived from the start rule")
	flags.StringVarP(&startName, "start", "s", "", "start rule name, default \"start\"")
	flags.StringArrayVarP(&includeDirs, "include", "I", nil, "extra directory to resolve %import paths in")
}

func main() {
	if e := rootCmd.Execute(); e != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}
}

func run(inFileName string) error {
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	content, e := os.ReadFile(inFileName)
	if e != nil {
		return e
	}

	provider := langdef.ChainProvider{
		&fileProvider{dirs: append([]string{filepath.Dir(inFileName)}, includeDirs...)},
		langdef.BuiltinProvider(),
	}
	opts := &langdef.Options{Start: startName, Provider: provider}

	log.Debugf("compiling %s", inFileName)
	g, e := langdef.Parse(source.New(inFileName, content), opts)
	if e != nil {
		return e
	}
	log.Debugf("compiled %d rules, %d tokens, %d ignore sets", len(g.Rules), len(g.Tokens), len(g.Ignore))

	if outFileName == "" {
		ext := filepath.Ext(inFileName)
		outFileName = inFileName[:len(inFileName)-len(ext)]
		if generateJson {
			outFileName += ".json"
		} else {
			outFileName += ".go"
		}
	}

	var out []byte
	if generateJson {
		out, e = makeJson(g)
	} else {
		out, e = makeGo(g)
	}
	if e != nil {
		return e
	}

	log.Debugf("writing %s (%d bytes)", outFileName, len(out))
	e = os.WriteFile(outFileName, out, 0o666)
	if e != nil {
		return e
	}

	fmt.Println(color.GreenString("%s -> %s", inFileName, outFileName))
	return nil
}

func makeJson(g *grammar.Grammar) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

var nameRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

func makeGo(g *grammar.Grammar) ([]byte, error) {
	if packageName == "" {
		dir, e := filepath.Abs(outFileName)
		if e != nil {
			return nil, e
		}

		dir, _ = filepath.Split(dir)
		_, packageName = filepath.Split(dir[:len(dir)-1])
	}
	if varName == "" {
		varName = identifier(g.Start)
	}

	if !nameRe.MatchString(packageName) {
		return nil, fmt.Errorf("invalid package name: %s", packageName)
	}
	if !nameRe.MatchString(varName) {
		return nil, fmt.Errorf("invalid variable name: %s", varName)
	}

	return writeGo(g, packageName, varName), nil
}

func identifier(name string) string {
	res := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		b := name[i]
		ok := b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || (i > 0 && b >= '0' && b <= '9')
		if ok {
			res = append(res, b)
		} else {
			res = append(res, '_')
		}
	}
	return string(res)
}
