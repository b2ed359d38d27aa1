package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"uns-resolution/internal/application/port"
	"uns-resolution/internal/domain/entity"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireArgs(c *cli.Context, names ...string) error {
	if c.NArg() != len(names) {
		return fmt.Errorf("%s expects arguments: %s", c.Command.Name, strings.Join(names, " "))
	}
	return nil
}

func locationFlag(c *cli.Context) (*entity.Layer, error) {
	raw := c.String("location")
	if raw == "" {
		return nil, nil
	}
	layer, err := entity.ParseLayer(raw)
	if err != nil {
		return nil, err
	}
	return &layer, nil
}

func withLocation(cmd *cli.Command) *cli.Command {
	cmd.Flags = append(cmd.Flags, &cli.StringFlag{
		Name:  "location",
		Usage: "Restrict the lookup to one layer (layer1, layer2, znsLayer)",
	})
	return cmd
}

// commands builds the subcommands. svc is read when a command runs, after
// the app's Before hook has built the service.
func commands(svc func() port.ResolutionService) []*cli.Command {
	single := func(name, usage string, args []string, run func(c *cli.Context, s port.ResolutionService) (any, error)) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			ArgsUsage: strings.Join(args, " "),
			Action: func(c *cli.Context) error {
				if args != nil {
					if err := requireArgs(c, args...); err != nil {
						return err
					}
				}
				out, err := run(c, svc())
				if err != nil {
					return err
				}
				return printJSON(c.App.Writer, out)
			},
		}
	}

	return []*cli.Command{
		single("owner", "Print the owner of a domain", []string{"DOMAIN"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.Owner(c.Context, c.Args().Get(0))
			}),
		single("resolver", "Print the resolver contract of a domain", []string{"DOMAIN"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.Resolver(c.Context, c.Args().Get(0))
			}),
		single("record", "Print one record of a domain", []string{"DOMAIN", "KEY"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.Record(c.Context, c.Args().Get(0), c.Args().Get(1))
			}),
		single("records", "Print the given records of a domain", nil,
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				if c.NArg() < 2 {
					return nil, errors.New("records expects arguments: DOMAIN KEY...")
				}
				return s.Records(c.Context, c.Args().First(), c.Args().Tail())
			}),
		single("all-records", "Print every known record of a domain", []string{"DOMAIN"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.AllRecords(c.Context, c.Args().Get(0))
			}),
		single("addr", "Print the address a domain holds for a ticker", []string{"DOMAIN", "TICKER"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.Addr(c.Context, c.Args().Get(0), c.Args().Get(1))
			}),
		single("multichain-addr", "Print the address of a token on a network", []string{"DOMAIN", "NETWORK", "TOKEN"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.MultiChainAddr(c.Context, c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
			}),
		single("token-uri", "Print the metadata URI of a token", []string{"TOKEN_ID"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.TokenURI(c.Context, c.Args().Get(0))
			}),
		single("domain-name", "Print the domain behind a token", []string{"TOKEN_ID"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.DomainName(c.Context, c.Args().Get(0))
			}),
		withLocation(single("reverse", "Print the domain an address reverse-resolves to", []string{"ADDRESS"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				layer, err := locationFlag(c)
				if err != nil {
					return nil, err
				}
				return s.Reverse(c.Context, c.Args().Get(0), layer)
			})),
		withLocation(single("reverse-token-id", "Print the reverse token of an address", []string{"ADDRESS"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				layer, err := locationFlag(c)
				if err != nil {
					return nil, err
				}
				return s.ReverseTokenID(c.Context, c.Args().Get(0), layer)
			})),
		single("locations", "Print where each domain is registered", nil,
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				if c.NArg() == 0 {
					return nil, errors.New("locations expects arguments: DOMAIN...")
				}
				return s.Locations(c.Context, c.Args().Slice())
			}),
		single("batch-owners", "Print the owner of each domain", nil,
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				if c.NArg() == 0 {
					return nil, errors.New("batch-owners expects arguments: DOMAIN...")
				}
				return s.BatchOwners(c.Context, c.Args().Slice())
			}),
		single("namehash", "Print the namehash of a domain", []string{"DOMAIN"},
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				return s.Namehash(c.Args().Get(0))
			}),
		single("dns", "Print DNS records of a domain", nil,
			func(c *cli.Context, s port.ResolutionService) (any, error) {
				if c.NArg() < 2 {
					return nil, errors.New("dns expects arguments: DOMAIN TYPE...")
				}
				return s.DNS(c.Context, c.Args().First(), c.Args().Tail())
			}),
	}
}
