package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/config"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/db"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/seed"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/store"
)

var (
	seedFile  string
	seedCount int
	seedForce bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo employees into the database",
	Long:  "Populates the employee collection from a JSON fixture or generated demo data. A non-empty collection is left alone unless --force is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.DatabaseURL == "" {
			return errors.New("missing required env: DATABASE_URL")
		}

		ctx := context.Background()
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		pg := store.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}

		if seedForce {
			if _, err := pool.Exec(ctx, `TRUNCATE employees`); err != nil {
				return err
			}
			fmt.Println("Cleared existing employees")
		} else {
			count, err := pg.CountEmployees(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				fmt.Printf("Database already has %d employees, nothing to do (use --force to replace)\n", count)
				return nil
			}
		}

		var employees []models.Employee
		if seedFile != "" {
			employees, err = seed.LoadFile(seedFile)
			if err != nil {
				return err
			}
		} else {
			employees = seed.Generate(seedCount)
		}

		if err := pg.InsertEmployees(ctx, employees); err != nil {
			return err
		}
		fmt.Printf("Seeded %d employees\n", len(employees))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON fixture with an array of employees")
	seedCmd.Flags().IntVar(&seedCount, "count", 12, "number of demo employees to generate when no fixture is given")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "replace existing data instead of skipping")
	rootCmd.AddCommand(seedCmd)
}
