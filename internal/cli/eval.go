package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chazu/frames/pkg/geom"
	"github.com/spf13/cobra"
)

func newEvalCmd(s *session) *cobra.Command {
	var showMatrix bool

	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "List the transforms registered by a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reg, err := s.evaluateFile(cmd.Context(), out, args[0])
			if err != nil {
				return err
			}
			printTitle(out, fmt.Sprintf("%d transform(s)", reg.Len()))
			for _, m := range reg.All() {
				describe(out, m, showMatrix)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showMatrix, "matrix", "m", false, "print the homogeneous 4x4 form")
	return cmd
}

func describe(w io.Writer, m geom.Matrix, showMatrix bool) {
	fmt.Fprintf(w, "%s %s %s\n", styleName.Render(m.Name()), kindOf(m), styleDim.Render("["+m.Class().String()+"]"))
	c := m.Class()
	if c.Translation {
		printKeyValue(w, "translation", formatVec(m.Translation()))
	}
	if c.Scale {
		printKeyValue(w, "scale", formatVec(m.Scale()))
	}
	if showMatrix {
		// Homogeneous is column-major.
		h := geom.Homogeneous(m)
		for r := 0; r < 4; r++ {
			printDetail(w, fmt.Sprintf("% 10.5f % 10.5f % 10.5f % 10.5f", h[r], h[4+r], h[8+r], h[12+r]))
		}
	}
}

func kindOf(m geom.Matrix) string {
	name := fmt.Sprintf("%T", m)
	return strings.ToLower(strings.TrimPrefix(name, "*geom."))
}
