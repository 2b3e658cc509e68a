// Command quorum-vault drives the Quorum Vault plugin from the command line.
//
// Usage:
//
//	quorum-vault [global flags] <group> <command> [flags]
//
// Groups and commands:
//
//	account  create | list | read | import | sign | sign-tx
//	key      create | list | read | update-tags | destroy | import | sign | sign-hash | address | verify
//	zk       create | list | read | sign | sign-hash
//
// Examples:
//
//	quorum-vault key create -curve secp256k1 -tags env=dev
//	quorum-vault key sign -id <id> -data "some-data"
//	quorum-vault account sign-tx -from <addr> -to <addr> -value 0.0001 \
//	  -gas-price 10000000000 -nonce 1 -chain-id 11155111 -assemble
//
// Results are printed to stdout as JSON; logs go to stderr.
//
// Environment variables:
//
//	VAULT_ADDR       - Vault server address (default: http://127.0.0.1:8200)
//	VAULT_TOKEN      - Vault authentication token
//	VAULT_CACERT     - PEM CA certificate file
//	VAULT_NAMESPACE  - Vault Enterprise namespace
//	QUORUM_MOUNT     - plugin mount path (default: quorum)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	vaultsdk "github.com/MaximFischuk/quorum-vault-client/sdk"
)

const (
	defaultAddr  = "http://127.0.0.1:8200"
	defaultMount = "quorum"
)

// errUsage reports a command line that could not be parsed. Usage has
// already been printed when it is returned.
var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	addr      string
	token     string
	mount     string
	timeout   time.Duration
	caCert    string
	namespace string
	logLevel  string
	logJSON   bool
}

// run executes one command. getenv supplies the environment fallbacks of
// the global flags.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	var g globalFlags
	fs := flag.NewFlagSet("quorum-vault", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&g.addr, "addr", envOrDefault(getenv, "VAULT_ADDR", defaultAddr), "Vault server address")
	fs.StringVar(&g.token, "token", getenv("VAULT_TOKEN"), "Vault authentication token")
	fs.StringVar(&g.mount, "mount", envOrDefault(getenv, "QUORUM_MOUNT", defaultMount), "Plugin mount path")
	fs.DurationVar(&g.timeout, "timeout", 30*time.Second, "Request timeout")
	fs.StringVar(&g.caCert, "ca-cert", getenv("VAULT_CACERT"), "PEM CA certificate file")
	fs.StringVar(&g.namespace, "namespace", getenv("VAULT_NAMESPACE"), "Vault namespace")
	fs.StringVar(&g.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	fs.BoolVar(&g.logJSON, "log-json", false, "Emit logs as JSON")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return errUsage
	}
	group, name := fs.Arg(0), fs.Arg(1)
	cmd, ok := commands[group][name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command: %s %s\n", group, name)
		fs.Usage()
		return errUsage
	}

	level := hclog.LevelFromString(g.logLevel)
	if level == hclog.NoLevel {
		return fmt.Errorf("invalid -log-level %q", g.logLevel)
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "quorum-vault",
		Level:      level,
		Output:     stderr,
		JSONFormat: g.logJSON,
	})

	opts := []vaultsdk.Option{
		vaultsdk.WithTimeout(g.timeout),
		vaultsdk.WithLogger(logger),
	}
	if g.caCert != "" {
		opts = append(opts, vaultsdk.WithCACert(g.caCert))
	}
	if g.namespace != "" {
		opts = append(opts, vaultsdk.WithNamespace(g.namespace))
	}
	client, err := vaultsdk.NewClient(g.addr, g.token, opts...)
	if err != nil {
		return err
	}

	env := &cmdEnv{
		client: client,
		mount:  g.mount,
		logger: logger,
		stderr: stderr,
	}
	logger.Debug("running command", "group", group, "command", name, "mount", g.mount)

	result, err := cmd.run(ctx, env, fs.Args()[2:])
	if err != nil {
		return err
	}
	return writeJSON(stdout, result)
}

func printUsage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "Usage: quorum-vault [global flags] <group> <command> [flags]")
	fmt.Fprintln(w, "\nCommands:")

	groups := make([]string, 0, len(commands))
	for g := range commands {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		names := make([]string, 0, len(commands[g]))
		for n := range commands[g] {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(w, "  %-8s %-12s %s\n", g, n, commands[g][n].summary)
		}
	}
	fmt.Fprintln(w, "\nGlobal flags:")
	fs.PrintDefaults()
}

func envOrDefault(getenv func(string) string, key, defaultVal string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// newFlagSet returns the flag set of a single command.
func newFlagSet(env *cmdEnv, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

// parseFlags parses args and enforces that every flag in required is set.
func parseFlags(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	var missing []string
	for _, name := range required {
		if f := fs.Lookup(name); f != nil && f.Value.String() == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %s required", fs.Name(), strings.Join(missing, ", "))
	}
	return nil
}
