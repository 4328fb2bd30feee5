// Command rr-authq sends a single query to an rr-authd server and prints the reply.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/common/utils"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
)

type queryOptions struct {
	server  string
	qtype   string
	timeout time.Duration
	opcode  uint8
	noColor bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:          "rr-authq [flags] name...",
		Short:        "query an authoritative rr-authd server",
		Example:      `rr-authq -s 127.0.0.1:5353 example.com`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			req, err := buildRequest(args, opts.qtype, opts.opcode, uint16(rand.UintN(1<<16))) //nolint:gosec // query id
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			start := time.Now()
			resp, err := exchange(ctx, wire.NewUDPCodec(log.NewNoopLogger()), opts.server, req)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, formatResponse(resp, opts.server, time.Since(start)))
			return err
		},
	}

	cmd.SetOut(out)
	cmd.Flags().StringVarP(&opts.server, "server", "s", "127.0.0.1:53", "server address (host:port)")
	cmd.Flags().StringVarP(&opts.qtype, "type", "t", "A", "query type name or number")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Second, "time to wait for a reply")
	cmd.Flags().Uint8Var(&opts.opcode, "opcode", 0, "header opcode (0-15)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

// parseType accepts a type mnemonic ("A", "mx") or a decimal value.
func parseType(s string) (domain.RRType, error) {
	if t := domain.RRTypeFromString(s); t != 0 {
		return t, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(s), "TYPE"), 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("unknown query type %q", s)
	}
	return domain.RRType(n), nil
}

// buildRequest makes a query with one IN question per name.
func buildRequest(names []string, qtype string, opcode uint8, id uint16) (domain.Request, error) {
	if opcode > 15 {
		return domain.Request{}, errors.New("opcode must be between 0 and 15")
	}
	t, err := parseType(qtype)
	if err != nil {
		return domain.Request{}, err
	}
	questions := make([]domain.Question, 0, len(names))
	for _, name := range names {
		questions = append(questions, domain.Question{
			Name:  utils.Fqdn(name),
			Type:  t,
			Class: domain.RRClassIN,
		})
	}
	return domain.Request{
		Header: domain.Header{
			ID:      id,
			Opcode:  domain.Opcode(opcode),
			QDCount: uint16(len(questions)), //nolint:gosec // argument count
		},
		Questions: questions,
	}, nil
}
