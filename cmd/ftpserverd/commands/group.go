package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/marmos91/ftpserver/pkg/auth"
)

// GroupCommand handles local group management against the XML auth store.
type GroupCommand struct {
	configFile string
}

// NewGroupCommand creates a new group command handler.
func NewGroupCommand() *GroupCommand {
	return &GroupCommand{}
}

// Run executes the group command with the given arguments.
func (c *GroupCommand) Run(args []string) error {
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
	case "members":
		return c.runMembers(subArgs)
	case "mount":
		return c.runMount(subArgs)
	case "help", "--help", "-h":
		return c.printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown group subcommand: %s\n\n", subcommand)
		return c.printUsage()
	}
}

func (c *GroupCommand) printUsage() error {
	fmt.Fprint(os.Stderr, `Usage: ftpserverd group <subcommand> [options]

Subcommands:
  add <name> [--rate-limit N] [--session-limit N]   Add a new group
  delete <name>                                      Delete a group
  list                                                List all groups
  members <name>                                      List members of a group
  mount add <group> <virtual> <native> [--access ro|rw] [--recursion none|shallow|full]
  mount remove <group> <virtual>                      Remove a mount point
  mount list <group>                                  List a group's mount points

Options:
  --config string    Path to config file (default: $XDG_CONFIG_HOME/ftpserverd/config.yaml)

Examples:
  ftpserverd group add editors
  ftpserverd group mount add editors /shared /srv/ftp/shared --access rw
  ftpserverd group members editors
  ftpserverd group list
`)
	return nil
}

func (c *GroupCommand) parseFlags(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.configFile, "config", "", "Path to config file")
	return fs.Parse(args)
}

func (c *GroupCommand) openStore() (*auth.Store, error) {
	return (&UserCommand{configFile: c.configFile}).openStore()
}

func (c *GroupCommand) runAdd(args []string) error {
	fs := flag.NewFlagSet("group add", flag.ExitOnError)
	rateLimit := fs.String("rate-limit", "0", "Aggregate bytes/sec limit for the group (0 = unlimited)")
	sessionLimit := fs.String("session-limit", "0", "Aggregate concurrent session limit for the group (0 = unlimited)")
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("group name required\nUsage: ftpserverd group add <name> [--rate-limit N] [--session-limit N]")
	}
	groupName := fs.Arg(0)

	rl, err := parseInt64(*rateLimit)
	if err != nil {
		return fmt.Errorf("invalid --rate-limit: %w", err)
	}
	sl, err := parseInt64(*sessionLimit)
	if err != nil {
		return fmt.Errorf("invalid --session-limit: %w", err)
	}

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if err := s.CreateGroup(groupName, rl, sl); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Group %q created\n", groupName)
	return nil
}

func (c *GroupCommand) runDelete(args []string) error {
	fs := flag.NewFlagSet("group delete", flag.ExitOnError)
	force := fs.Bool("force", false, "Force delete even if users are members")
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("group name required\nUsage: ftpserverd group delete <name> [--force]")
	}
	groupName := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}

	if !*force {
		members, err := s.ListGroupMembers(groupName)
		if err != nil {
			return fmt.Errorf("group %q not found", groupName)
		}
		if len(members) > 0 {
			return fmt.Errorf("group %q has members (%s); use --force to delete anyway", groupName, strings.Join(members, ", "))
		}
	}

	if !s.RemoveGroup(groupName) {
		return fmt.Errorf("group %q not found", groupName)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Group %q deleted\n", groupName)
	return nil
}

func (c *GroupCommand) runList(args []string) error {
	fs := flag.NewFlagSet("group list", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}

	s, err := c.openStore()
	if err != nil {
		return err
	}

	groups := s.ListGroups()
	if len(groups) == 0 {
		fmt.Println("No groups configured")
		return nil
	}

	fmt.Printf("%-20s %-10s %-20s %s\n", "NAME", "MOUNTS", "RATE LIMIT (B/s)", "SESSION LIMIT")
	fmt.Println(strings.Repeat("-", 70))
	for _, g := range groups {
		fmt.Printf("%-20s %-10d %-20d %d\n", g.Name, len(g.Mounts), g.RateLimitBytesPerSec, g.SessionCountLimit)
	}
	return nil
}

func (c *GroupCommand) runMembers(args []string) error {
	fs := flag.NewFlagSet("group members", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("group name required\nUsage: ftpserverd group members <name>")
	}
	groupName := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	members, err := s.ListGroupMembers(groupName)
	if err != nil {
		return fmt.Errorf("group %q not found", groupName)
	}
	if len(members) == 0 {
		fmt.Printf("Group %q has no members\n", groupName)
		return nil
	}
	fmt.Printf("Members of group %q:\n", groupName)
	for _, m := range members {
		fmt.Printf("  - %s\n", m)
	}
	return nil
}

func (c *GroupCommand) runMount(args []string) error {
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

func (c *GroupCommand) runMountAdd(args []string) error {
	fs := flag.NewFlagSet("group mount add", flag.ExitOnError)
	access := fs.String("access", "ro", "Access mode: ro or rw")
	recursion := fs.String("recursion", "full", "Recursion: none, shallow, or full")
	autocreate := fs.Bool("autocreate", false, "Create the native directory if missing")
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("group, virtual path, and native path required\nUsage: ftpserverd group mount add <group> <virtual> <native>")
	}
	groupName, virtual, native := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	m := auth.MountInfo{Virtual: virtual, Native: native, Access: *access, Recursion: *recursion, Autocreate: *autocreate}
	if err := s.AddGroupMount(groupName, m); err != nil {
		return fmt.Errorf("failed to add mount: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Mounted %q at %q for group %q\n", native, virtual, groupName)
	return nil
}

func (c *GroupCommand) runMountRemove(args []string) error {
	fs := flag.NewFlagSet("group mount remove", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("group and virtual path required\nUsage: ftpserverd group mount remove <group> <virtual>")
	}
	groupName, virtual := fs.Arg(0), fs.Arg(1)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	if err := s.RemoveGroupMount(groupName, virtual); err != nil {
		return fmt.Errorf("failed to remove mount: %w", err)
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save auth store: %w", err)
	}

	fmt.Printf("Removed mount %q from group %q\n", virtual, groupName)
	return nil
}

func (c *GroupCommand) runMountList(args []string) error {
	fs := flag.NewFlagSet("group mount list", flag.ExitOnError)
	if err := c.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("group name required\nUsage: ftpserverd group mount list <group>")
	}
	groupName := fs.Arg(0)

	s, err := c.openStore()
	if err != nil {
		return err
	}
	mounts, err := s.ListGroupMounts(groupName)
	if err != nil {
		return fmt.Errorf("group %q not found", groupName)
	}
	if len(mounts) == 0 {
		fmt.Printf("Group %q has no mounts\n", groupName)
		return nil
	}
	fmt.Printf("%-20s %-30s %-6s %-10s\n", "VIRTUAL", "NATIVE", "ACCESS", "RECURSION")
	for _, m := range mounts {
		fmt.Printf("%-20s %-30s %-6s %-10s\n", m.Virtual, m.Native, m.Access, m.Recursion)
	}
	return nil
}
