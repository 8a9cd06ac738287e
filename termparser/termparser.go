// Package termparser parses the external term syntax used by the
// unification CLI commands: `f(x, g(y), A)`. Grammar:
//
//	term ::= name "(" [ term { "," term } ] ")" | name
//	name ::= [A-Za-z][A-Za-z0-9_]*
//
// By convention, identifiers starting with an uppercase letter denote
// constants and all others denote variables (the opposite of Prolog).
package termparser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gavinvogt/type-inference-survey/term"
)

// TermLexer defines the lexical rules for the term syntax.
var TermLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Name", Pattern: `[A-Za-z][A-Za-z0-9_]*`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Node is the participle-produced parse tree for a single term, later
// lowered into a term.Term by ToTerm.
type Node struct {
	Name string  `@Name`
	Args *ArgList `@@?`
}

// ArgList is the optional parenthesized, comma-separated argument list
// that turns a bare name into a function application.
type ArgList struct {
	LParen string  `"("`
	First  *Node   `( @@`
	Rest   []*Node `  ( "," @@ )* )?`
	RParen string  `")"`
}

var termParser *participle.Parser[Node]

func init() {
	var err error
	termParser, err = participle.Build[Node](
		participle.Lexer(TermLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		panic("termparser: failed to build parser: " + err.Error())
	}
}

// Parse parses a single term from its textual syntax.
func Parse(input string) (term.Term, error) {
	node, err := termParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("termparser: %w", err)
	}
	return ToTerm(node), nil
}

// ToTerm lowers a parsed Node into a term.Term, applying the
// uppercase-is-constant / lowercase-is-variable naming convention.
func ToTerm(n *Node) term.Term {
	if n.Args == nil {
		if isUpper(n.Name) {
			return term.NewConstant(n.Name)
		}
		return term.NewVariable(n.Name)
	}

	var args []term.Term
	if n.Args.First != nil {
		args = append(args, ToTerm(n.Args.First))
		for _, rest := range n.Args.Rest {
			args = append(args, ToTerm(rest))
		}
	}
	return term.NewApplication(n.Name, args)
}

func isUpper(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}
