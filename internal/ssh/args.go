package ssh

import (
	"sort"
	"strconv"

	shellquote "github.com/kballard/go-shellquote"
)

// BaseArgs returns the OpenSSH arguments for the config (options only, no user@host).
// Options are emitted as -o key=value in key order.
func (c *Config) BaseArgs() []string {
	args := []string{
		"-p", strconv.Itoa(c.port),
	}

	keys := make([]string, 0, len(c.options))
	for k := range c.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		args = append(args, "-o", k+"="+c.options[k])
	}

	if proxy, ok := c.ProxyAddress(); ok {
		args = append(args, "-o", "ProxyCommand=nc -X 5 -x "+proxy.String()+" %h %p")
	}

	return args
}

// Args returns complete OpenSSH arguments for executing a command.
func (c *Config) Args(command ...string) []string {
	args := c.BaseArgs()
	args = append(args, c.Destination())
	args = append(args, command...)
	return args
}

// CommandLine returns the full ssh invocation as a shell-quoted string.
func (c *Config) CommandLine(command ...string) string {
	argv := append([]string{"ssh"}, c.Args(command...)...)
	return shellquote.Join(argv...)
}
