package commands

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/marmos91/ftpserver/internal/cli/prompt"
	"github.com/marmos91/ftpserver/pkg/auth"
	"github.com/marmos91/ftpserver/pkg/config"
)

// UserCommand handles local user management against the XML auth store,
// for operators without network access to a running ftpserverd's webui API.
type UserCommand struct {
	configFile string
}

// NewUserCommand creates a new user command handler.
func NewUserCommand() *UserCommand {
	return &UserCommand{}
}

// Run executes the user command with the given arguments.
func (c *UserCommand) Run(args []string) error {
	if len(args) < 1 {
		return c.printUsage()
	}

	subcommand := args[0]
	subArgs := args[1:]

	switch subcommand {
	case "add":
		return c.runAdd(subArgs)
	case "delete", "remove":
		return c.runDelete(subArgs)
	case "list", "ls":
		return c.runList(subArgs)
	case "passwd", "password":
		return c.runPasswd(subArgs)
	case "mount":
		return c.runMount(subArgs)
	case "groups":
		return c.runGroups(subArgs)
	case "join":
		return c.runJoin(subArgs)
	case "leave":
		return c.runLeave(subArgs)
	case "disable":
		return c.runSetDisabled(subArgs, true)
	case "enable":
		return c.runSetDisabled(subArgs, false)
	case "help", "--help", "-h":
		return c.printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown user subcommand: %s\n\n", subcommand)
		return c.printUsage()
	}
}

func (c *UserCommand) printUsage() error {
	fmt.Fprint(os.Stderr, `Usage: ftpserverd user <subcommand> [options]

Subcommands:
  add <username>                    Add a new user (prompts for password)
  delete <username>                 Delete a user
  list                              List all users
  passwd <username>                 Change a user's password
  enable <username>                 Re-enable a disabled user
  disable <username>                Disable a user's login
  groups <username>                 List groups a user belongs to
  join <username> <group>           Add a user to a group
  leave <username> <group>          Remove a user from a group
  mount add <user> <virtual> <native> [--access ro|rw] [--recursion none|shallow|full] [--autocreate]
  mount remove <user> <virtual>     Remove a mount point
  mount list <user>                 List a user's mount points

Options:
  --config string    Path to config file (default: $XDG_CONFIG_HOME/ftpserverd/config.yaml)

Examples:
  ftpserverd user add alice
  ftpserverd user passwd alice
  ftpserverd user join alice editors
  ftpserverd user mount add alice /home /srv/ftp/alice --access rw
  ftpserverd user list
`)
	return nil
}

func (c *UserCommand) parseFlags(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.configFile, "config", "", "Path to config file")
	return fs.Parse(args)
}

func (c *UserCommand) openStore() (*auth.Store, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	s := auth.NewStore(cfg.Auth.UsersPath, cfg.Auth.GroupsPath)
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("failed to load auth store: %w", err)
	}
	return s, nil
}

func (c *UserCommand) runAdd(args []string) error {
	fs := flag.NewFlagSet("user add", flag.ExitOnError)
	methods := fs.String("methods", "", "Comma-separated allowed auth methods (default: all)")
	groups := fs.String("groups", "", "Comma-separated list of groups")
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("username required\nUsage: ftpserverd user add <username> [--groups g1,g2] [--methods basic]")
	}
	username := fs.Arg(0)

	password, err := prompt.NewPassword()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	s, err := c.openStore()
	if err != nil {
		return err
	}

	var methodList, groupList []string
	if *methods != "" {
		methodList = splitCSV(*methods)
	}
	if *groups != "" {
		groupList = splitCSV(*groups)
	}

	if err := s.CreateUserWithPassword(username, password, methodList, groupList); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("User %q created\n", username)
	return nil
}

func (c *UserCommand) runDelete(args []string) error {
	fs := flag.NewFlagSet("user delete", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("username required\nUsage: ftpserverd user delete <username>")
	}
	username := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if !s.RemoveUser(username) {
		return fmt.Errorf("user %q not found", username)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("User %q deleted\n", username)
	return nil
}

func (c *UserCommand) runList(args []string) error {
	fs := flag.NewFlagSet("user list", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}

	s, err := c.openStore()
	if err != nil {
		return err
	}

	users := s.ListUsers()
	if len(users) == 0 {
		fmt.Println("No users configured")
		return nil
	}

	fmt.Printf("%-20s %-10s %-8s %s\n", "USERNAME", "DISABLED", "MOUNTS", "GROUPS")
	fmt.Println(strings.Repeat("-", 80))
	for _, u := range users {
		disabled := "no"
		if u.Disabled {
			disabled = "yes"
		}
		groups := strings.Join(u.Groups, ",")
		if groups == "" {
			groups = "-"
		}
		fmt.Printf("%-20s %-10s %-8d %s\n", u.Name, disabled, len(u.Mounts), groups)
	}
	return nil
}

func (c *UserCommand) runPasswd(args []string) error {
	fs := flag.NewFlagSet("user passwd", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("username required\nUsage: ftpserverd user passwd <username>")
	}
	username := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if _, err := s.GetUserInfo(username); err != nil {
		return fmt.Errorf("user %q not found", username)
	}

	password, err := prompt.NewPassword()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := s.SetUserPassword(username, password); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Password changed for user %q\n", username)
	return nil
}

func (c *UserCommand) runSetDisabled(args []string, disabled bool) error {
	fs := flag.NewFlagSet("user enable/disable", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("username required")
	}
	username := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if err := s.UpdateUser(username, auth.UserPatch{Disabled: &disabled}); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	verb := "enabled"
	if disabled {
		verb = "disabled"
	}
	fmt.Printf("User %q %s\n", username, verb)
	return nil
}

func (c *UserCommand) runGroups(args []string) error {
	fs := flag.NewFlagSet("user groups", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("username required\nUsage: ftpserverd user groups <username>")
	}
	username := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	info, err := s.GetUserInfo(username)
	if err != nil {
		return fmt.Errorf("user %q not found", username)
	}

	if len(info.Groups) == 0 {
		fmt.Printf("User %q is not a member of any groups\n", username)
		return nil
	}
	fmt.Printf("Groups for user %q:\n", username)
	for _, g := range info.Groups {
		fmt.Printf("  - %s\n", g)
	}
	return nil
}

func (c *UserCommand) runJoin(args []string) error {
	fs := flag.NewFlagSet("user join", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("username and group required\nUsage: ftpserverd user join <username> <group>")
	}
	username, groupName := fs.Arg(0), fs.Arg(1)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if err := s.AddGroupMember(groupName, username); err != nil {
		return fmt.Errorf("failed to add user to group: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Added user %q to group %q\n", username, groupName)
	return nil
}

func (c *UserCommand) runLeave(args []string) error {
	fs := flag.NewFlagSet("user leave", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("username and group required\nUsage: ftpserverd user leave <username> <group>")
	}
	username, groupName := fs.Arg(0), fs.Arg(1)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if err := s.RemoveGroupMember(groupName, username); err != nil {
		return fmt.Errorf("failed to remove user from group: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Removed user %q from group %q\n", username, groupName)
	return nil
}

func (c *UserCommand) runMount(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("mount subcommand required (add|remove|list)")
	}
	switch args[0] {
	case "add":
		return c.runMountAdd(args[1:])
	case "remove":
		return c.runMountRemove(args[1:])
	case "list":
		return c.runMountList(args[1:])
	default:
		return fmt.Errorf("unknown mount subcommand: %s", args[0])
	}
}

func (c *UserCommand) runMountAdd(args []string) error {
	fs := flag.NewFlagSet("user mount add", flag.ExitOnError)
	access := fs.String("access", "ro", "Access mode: ro or rw")
	recursion := fs.String("recursion", "full", "Recursion: none, shallow, or full")
	autocreate := fs.Bool("autocreate", false, "Create the native directory if missing")
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("username, virtual path, and native path required\nUsage: ftpserverd user mount add <username> <virtual> <native>")
	}
	username, virtual, native := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	m := auth.MountInfo{Virtual: virtual, Native: native, Access: *access, Recursion: *recursion, Autocreate: *autocreate}
	if err := s.AddUserMount(username, m); err != nil {
		return fmt.Errorf("failed to add mount: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Mounted %q at %q for user %q\n", native, virtual, username)
	return nil
}

func (c *UserCommand) runMountRemove(args []string) error {
	fs := flag.NewFlagSet("user mount remove", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("username and virtual path required\nUsage: ftpserverd user mount remove <username> <virtual>")
	}
	username, virtual := fs.Arg(0), fs.Arg(1)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if err := s.RemoveUserMount(username, virtual); err != nil {
		return fmt.Errorf("failed to remove mount: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Removed mount %q from user %q\n", virtual, username)
	return nil
}

func (c *UserCommand) runMountList(args []string) error {
	fs := flag.NewFlagSet("user mount list", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("username required\nUsage: ftpserverd user mount list <username>")
	}
	username := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	mounts, err := s.ListUserMounts(username)
	if err != nil {
		return fmt.Errorf("user %q not found", username)
	}
	if len(mounts) == 0 {
		fmt.Printf("User %q has no mounts\n", username)
		return nil
	}
	fmt.Printf("%-20s %-30s %-6s %-10s\n", "VIRTUAL", "NATIVE", "ACCESS", "RECURSION")
	for _, m := range mounts {
		fmt.Printf("%-20s %-30s %-6s %-10s\n", m.Virtual, m.Native, m.Access, m.Recursion)
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseInt64 parses a CLI flag value into an int64, used by the group
// subcommands' rate/session limit flags.
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
