// /internal/command/command_registry.go
package command

var registry = map[string]Command{}

// Register adds a command under its name, replacing any previous entry.
func Register(cmd Command) {
	registry[cmd.Name()] = cmd
}

// RegisterCommand wraps cmd in middlewares and registers it.
func RegisterCommand(cmd Command, mws ...Middleware) {
	Register(ApplyMiddlewares(cmd, mws...))
}

func Get(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

func All() []Command {
	var list []Command
	for _, cmd := range registry {
		list = append(list, cmd)
	}
	return list
}
