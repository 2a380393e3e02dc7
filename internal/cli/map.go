package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/frames/pkg/chain"
	"github.com/chazu/frames/pkg/geom"
	"github.com/spf13/cobra"
)

func newMapCmd(s *session) *cobra.Command {
	var (
		names   []string
		point   string
		inverse bool
		vector  bool
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "map FILE",
		Short: "Map a point through a chain of named transforms",
		Long: `Map a point from the innermost local frame to the outermost master frame.
The chain lists transforms outermost first, so --chain base,arm maps through
arm and then base. With --inverse the point is taken from master to local.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p, err := parseVec(point)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("--chain needs at least one transform name")
			}
			reg, err := s.evaluateFile(cmd.Context(), out, args[0])
			if err != nil {
				return err
			}
			ms, err := chain.Resolve(reg, names)
			if err != nil {
				return err
			}
			st := chain.New(ms...)
			loggerFromContext(cmd.Context()).Debug("chain built", "depth", st.Depth(), "class", st.Global().Class())

			if trace {
				for i := 0; i < st.Depth(); i++ {
					printDetail(out, fmt.Sprintf("%s -> %s", names[i], formatVec(mapThrough(st.GlobalAt(i), p, inverse, vector))))
				}
			}
			result := mapThrough(st.Global(), p, inverse, vector)
			printSuccess(out, "%s", formatVec(result))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&names, "chain", "c", nil, "transform names, outermost first")
	cmd.Flags().StringVarP(&point, "point", "p", "0,0,0", "point or direction as x,y,z")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "map from master to local")
	cmd.Flags().BoolVar(&vector, "vector", false, "treat the input as a direction and ignore translation")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the result after each prefix of the chain")
	return cmd
}

func mapThrough(m geom.Matrix, p geom.Vec3, inverse, vector bool) geom.Vec3 {
	switch {
	case inverse && vector:
		return m.MasterToLocalVect(p)
	case inverse:
		return m.MasterToLocal(p)
	case vector:
		return m.LocalToMasterVect(p)
	}
	return m.LocalToMaster(p)
}

// parseVec parses "x,y,z".
func parseVec(s string) (geom.Vec3, error) {
	var v geom.Vec3
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid vector %q: want x,y,z", s)
	}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return v, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		v[i] = f
	}
	return v, nil
}
