// cmd/seed/main.go
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/salesgen"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Generate synthetic data files for the store-ops backend",
		Commands: []*cli.Command{
			{
				Name:  "sales",
				Usage: "Generate the sales history seed JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output path for the sales seed file",
						Value: "./data/sales_seed.json",
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of trailing days to generate",
						Value: 30,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for deterministic output",
						Value: 42,
					},
					&cli.StringFlag{
						Name:  "end-date",
						Usage: "Last day of the history (YYYY-MM-DD, default today)",
					},
				},
				Action: runSales,
			},
			{
				Name:  "training",
				Usage: "Generate the synthetic demand training CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output path for the training CSV",
						Value: "./data/demand_training.csv",
					},
					&cli.IntFlag{
						Name:  "samples",
						Usage: "Number of condition samples (rows = samples x items)",
						Value: 3000,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for deterministic output",
						Value: 42,
					},
				},
				Action: runTraining,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSales(c *cli.Context) error {
	endDate := timeutil.NowJST()
	if raw := c.String("end-date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, timeutil.JST)
		if err != nil {
			return fmt.Errorf("invalid end-date %q: %w", raw, err)
		}
		endDate = parsed
	}

	sales, dailies := salesgen.Generate(c.Int64("seed"), c.Int("days"), endDate)

	payload := map[string]any{
		"sales":         sales,
		"daily_summary": dailies,
	}
	out, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("create %s: %w", c.String("out"), err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode sales seed: %w", err)
	}

	log.Printf("wrote %s: %d sales, %d days", c.String("out"), len(sales), len(dailies))
	return nil
}

func runTraining(c *cli.Context) error {
	rows := salesgen.GenerateTrainingRows(c.Int64("seed"), c.Int("samples"))

	out, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("create %s: %w", c.String("out"), err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	header := []string{"weather", "temperature", "humidity", "day_of_week", "is_weekend", "hour", "item", "demand"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Weather,
			strconv.FormatFloat(row.Temperature, 'f', 1, 64),
			strconv.FormatFloat(row.Humidity, 'f', 1, 64),
			strconv.Itoa(row.DayOfWeek),
			strconv.Itoa(row.IsWeekend),
			strconv.Itoa(row.Hour),
			row.Item,
			strconv.Itoa(row.Demand),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Printf("wrote %s: %d rows", c.String("out"), len(rows))
	return nil
}
