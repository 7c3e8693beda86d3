package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerflow/pkg/store"
	rjson "github.com/matzehuels/layerflow/render/json"
)

// openStore picks MongoStore when a mongo URI is given, else a MemoryStore
// scoped to the process - the latter is only useful combined with "save"
// and "load" in the same invocation via stdin/stdout, but exercises the
// interface uniformly regardless of backend.
func openStore(cmd *cobra.Command) (store.Store, error) {
	uri, _ := cmd.Flags().GetString("mongo-uri")
	if uri == "" {
		return store.NewMemoryStore(), nil
	}
	db, _ := cmd.Flags().GetString("mongo-db")
	coll, _ := cmd.Flags().GetString("mongo-collection")
	return store.Connect(cmd.Context(), uri, db, coll)
}

func (c *CLI) newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and load layouts from a persistence backend",
	}
	cmd.PersistentFlags().String("mongo-uri", "", "MongoDB connection URI (defaults to an in-memory store)")
	cmd.PersistentFlags().String("mongo-db", "layerflow", "MongoDB database name")
	cmd.PersistentFlags().String("mongo-collection", "layouts", "MongoDB collection name")

	cmd.AddCommand(c.newStoreSaveCmd())
	cmd.AddCommand(c.newStoreLoadCmd())
	cmd.AddCommand(c.newStoreListCmd())
	cmd.AddCommand(c.newStoreDeleteCmd())
	return cmd
}

func (c *CLI) newStoreSaveCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a rendered JSON layout under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("reading layout json: %w", err)
			}
			g, err := rjson.Parse(data)
			if err != nil {
				return fmt.Errorf("parsing layout json: %w", err)
			}
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Save(cmd.Context(), args[0], g)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "path to a layerflow JSON layout (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (c *CLI) newStoreLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load a stored layout and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			entry, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := rjson.Render(entry.Graph)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	return cmd
}

func (c *CLI) newStoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored layout names, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			names, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func (c *CLI) newStoreDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(cmd.Context(), args[0])
		},
	}
}
