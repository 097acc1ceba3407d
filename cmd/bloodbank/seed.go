package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adfharrison1/go-bloodbank/pkg/client"
	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

var bloodGroups = []string{"O+", "O-", "A+", "A-", "B+", "B-", "AB+", "AB-"}

// generateRandomName generates a random 6-letter capitalised name
func generateRandomName(rng *rand.Rand) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := make([]byte, 6)
	for i := range name {
		name[i] = letters[rng.Intn(len(letters))]
	}
	name[0] = name[0] - 32
	return string(name)
}

// sampleForm builds plausible form input for the n-th record of kind.
func sampleForm(kind domain.Kind, n int, rng *rand.Rand) map[string]string {
	form := make(map[string]string, len(kind.Fields))
	for _, f := range kind.Fields {
		switch {
		case f.Name == kind.KeyField:
			form[f.Name] = fmt.Sprintf("%s%d", strings.ToUpper(kind.Path[:1]), n)
		case f.Type == domain.FieldNumber:
			form[f.Name] = fmt.Sprint(rng.Intn(48) + 18)
		case f.Name == "Blood_Type":
			form[f.Name] = bloodGroups[rng.Intn(len(bloodGroups))]
		case f.Name == "Name" && kind.Name == domain.BloodType.Name:
			form[f.Name] = bloodGroups[n%len(bloodGroups)]
		case f.Name == "Date":
			form[f.Name] = time.Now().AddDate(0, 0, -rng.Intn(365)).Format("2006-01-02")
		case strings.HasSuffix(f.Name, "_ID"):
			form[f.Name] = fmt.Sprintf("%s%d", strings.ToUpper(f.Name[:1]), rng.Intn(n+1)+1)
		default:
			form[f.Name] = generateRandomName(rng)
		}
	}
	return form
}

type seedStats struct {
	success int64
	failed  int64
}

// seed submits count generated records of kind using the given number of
// concurrent workers.
func seed(ctx context.Context, c *client.Client, kind domain.Kind, count, workers int, log logrus.FieldLogger) seedStats {
	var stats seedStats
	jobs := make(chan int)
	var wg sync.WaitGroup
	reportInterval := max(1, count/10)
	start := time.Now()

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seedValue int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seedValue))
			for n := range jobs {
				_, err := c.Create(ctx, kind, client.Coerce(kind, sampleForm(kind, n, rng)))
				if err != nil {
					atomic.AddInt64(&stats.failed, 1)
					log.WithError(err).WithField("record", n).Warn("Seed insert failed")
				} else {
					atomic.AddInt64(&stats.success, 1)
				}

				if done := atomic.LoadInt64(&stats.success) + atomic.LoadInt64(&stats.failed); done%int64(reportInterval) == 0 {
					log.WithFields(logrus.Fields{
						"done":  done,
						"total": count,
						"rate":  fmt.Sprintf("%.1f/s", float64(done)/time.Since(start).Seconds()),
					}).Info("Seeding progress")
				}
			}
		}(time.Now().UnixNano() + int64(w))
	}

feed:
	for n := 1; n <= count; n++ {
		select {
		case jobs <- n:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return stats
}

func newSeedCmd(a *app) *cobra.Command {
	var count, workers int

	cmd := &cobra.Command{
		Use:     "seed <kind>",
		Short:   "Insert generated records against a running server",
		Example: "  bloodbank seed donors -n 500 --workers 8",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.KindByName(args[0])
			if err != nil {
				return err
			}
			if count <= 0 || workers <= 0 {
				return fmt.Errorf("count and workers must be greater than 0")
			}

			c := client.New(a.cfg.APIURL, client.WithRetries(a.cfg.ClientRetries), client.WithLogger(a.log))
			start := time.Now()
			stats := seed(cmd.Context(), c, kind, count, workers, a.log)

			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d %s (%d failed) in %v\n",
				stats.success, kind.Plural, stats.failed, time.Since(start).Round(time.Millisecond))
			if stats.failed > 0 {
				return fmt.Errorf("%d inserts failed", stats.failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of records to insert")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent requests")
	return cmd
}
