package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memoryd/internal/store"
)

// NewMemoryCommand returns the memory subcommand for local inspection and
// maintenance of the database, without going through the MCP transport.
func NewMemoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "memory",
		Usage: "Manage stored memories locally",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all memories",
				Action: runMemoryList,
			},
			{
				Name:      "show",
				Usage:     "Show a memory",
				ArgsUsage: "<id>",
				Action:    runMemoryShow,
			},
			{
				Name:      "add",
				Usage:     "Store a new memory",
				ArgsUsage: "<title> <content>",
				Action:    runMemoryAdd,
			},
			{
				Name:      "update",
				Usage:     "Update a memory",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "New title"},
					&cli.StringFlag{Name: "content", Usage: "New content"},
				},
				Action: runMemoryUpdate,
			},
			{
				Name:      "forget",
				Usage:     "Delete a memory",
				ArgsUsage: "<id>",
				Action:    runMemoryForget,
			},
		},
		DefaultCommand: "list",
	}
}

func openStore(cmd *cli.Command) (*store.Store, error) {
	cfg := loadConfig(cmd)
	return store.Open(cfg.Database.Path)
}

func argID(cmd *cli.Command, usage string) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func runMemoryList(_ context.Context, cmd *cli.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	refs, err := st.List()
	if err != nil {
		return fmt.Errorf("list memories: %w", err)
	}

	if len(refs) == 0 {
		fmt.Println("No memories stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE")
	for _, ref := range refs {
		fmt.Fprintf(w, "%d\t%s\n", ref.ID, ref.Title)
	}
	return w.Flush()
}

func runMemoryShow(_ context.Context, cmd *cli.Command) error {
	id, err := argID(cmd, "memoryd memory show <id>")
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	m, err := st.GetByID(id)
	if err != nil {
		return fmt.Errorf("get memory: %w", err)
	}
	if m == nil {
		return fmt.Errorf("memory %d not found", id)
	}

	fmt.Printf("ID:      %d\n", m.ID)
	fmt.Printf("Title:   %s\n", m.Title)
	fmt.Printf("Created: %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated: %s\n", m.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("\nContent:\n%s\n", m.Content)

	return nil
}

func runMemoryAdd(_ context.Context, cmd *cli.Command) error {
	title := cmd.Args().Get(0)
	content := cmd.Args().Get(1)
	if title == "" || content == "" {
		return fmt.Errorf("usage: memoryd memory add <title> <content>")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Add(title, content)
	if err != nil {
		return fmt.Errorf("add memory: %w", err)
	}

	fmt.Printf("Memory stored with ID %d.\n", id)
	return nil
}

func runMemoryUpdate(_ context.Context, cmd *cli.Command) error {
	id, err := argID(cmd, "memoryd memory update <id> [--title t] [--content c]")
	if err != nil {
		return err
	}

	var patch store.Patch
	if cmd.IsSet("title") {
		title := cmd.String("title")
		patch.Title = &title
	}
	if cmd.IsSet("content") {
		content := cmd.String("content")
		patch.Content = &content
	}
	if patch.Empty() {
		return fmt.Errorf("nothing to update: pass --title and/or --content")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ok, err := st.Update(id, patch)
	if err != nil {
		return fmt.Errorf("update memory: %w", err)
	}
	if !ok {
		return fmt.Errorf("memory %d not found", id)
	}

	fmt.Printf("Memory %d updated.\n", id)
	return nil
}

func runMemoryForget(_ context.Context, cmd *cli.Command) error {
	id, err := argID(cmd, "memoryd memory forget <id>")
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ok, err := st.Delete(id)
	if err != nil {
		return fmt.Errorf("forget: %w", err)
	}
	if !ok {
		return fmt.Errorf("memory %d not found", id)
	}

	fmt.Printf("Memory %d deleted.\n", id)
	return nil
}
