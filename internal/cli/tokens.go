package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docblock/internal/ui/pretty"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/lexer"
)

type tokensFlags struct {
	multiline bool
	json      bool
}

// tokenJSON is the JSON form of a lexer token.
type tokenJSON struct {
	Kind     string        `json:"kind"`
	Text     string        `json:"text"`
	Position dast.Position `json:"position"`
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the lexer tokens of a file",
		Long: `Print the token sequence the parser sees for a file, or for stdin when
no file is given. Delimiters and whitespace are not emitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.multiline, "multiline", false, `also lex "/*" comments`)
	cmd.Flags().BoolVar(&flags.json, "json", false, "print tokens as JSON")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, flags *tokensFlags) error {
	var content []byte
	var err error
	if len(args) == 1 {
		content, err = os.ReadFile(args[0])
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	tokens := lexer.Lex(string(content), lexer.Options{Multiline: flags.multiline})
	out := cmd.OutOrStdout()

	if flags.json {
		list := make([]tokenJSON, 0, len(tokens))
		for _, tok := range tokens {
			list = append(list, tokenJSON{Kind: tok.Kind.String(), Text: tok.Text, Position: tok.Position()})
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(list); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		return nil
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	var builder strings.Builder
	for _, tok := range tokens {
		builder.WriteString(styles.Position.Render(fmt.Sprintf("%-16s", pretty.FormatPosition(tok.Position()))))
		builder.WriteString(styles.Kind.Render(fmt.Sprintf("%-15s", tok.Kind)))
		if tok.Text != "" {
			builder.WriteString(" " + styles.Value.Render(strconv.Quote(tok.Text)))
		}
		builder.WriteString("\n")
	}

	if _, err := io.WriteString(out, builder.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
