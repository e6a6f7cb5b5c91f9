package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gocycling/internal/bootstrap"
	historydto "gocycling/internal/modules/history/dto"
	prefsdto "gocycling/internal/modules/preferences/dto"
	ridedto "gocycling/internal/modules/ride/dto"
	"gocycling/internal/platform/config"
	apperrors "gocycling/internal/platform/errors"
	"gocycling/internal/platform/units"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "gocycling",
		Short:         "Bike ride timer and history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newRideCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newPrefsCmd(&dataDir))
	root.AddCommand(newSamplerCmd(&dataDir))
	return root
}

func loadApp(dataDir string, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logOut)
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(cmd *cobra.Command, dataDir string, fn func(ctx context.Context, app *bootstrap.App) error) (err error) {
	app, err := loadApp(dataDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(cmd.Context(), app)
}

func unitSystem(ctx context.Context, app *bootstrap.App) units.System {
	prefs, err := app.PrefsCLI.Get(ctx)
	if err != nil {
		return units.Metric
	}
	system, err := units.ParseSystem(prefs.Units)
	if err != nil {
		return units.Metric
	}
	return system
}

func confirm(cmd *cobra.Command, question string) (bool, error) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			logPath := filepath.Join(*dataDir, ".gocycling", "tui.log")
			if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
				return err
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer logFile.Close()

			app, err := loadApp(*dataDir, logFile)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func printStatus(w io.Writer, out ridedto.StatusOutput, system units.System) {
	if out.RideID == "" {
		_, _ = fmt.Fprintln(w, "no active ride")
		return
	}
	_, _ = fmt.Fprintf(w, "%s ride=%s elapsed=%s distance=%s avg=%s\n",
		out.Status,
		out.RideID,
		units.FormatDuration(out.Elapsed),
		units.FormatDistance(out.Distance, system),
		units.FormatSpeed(out.AverageSpeed, system),
	)
}

func newRideCmd(dataDir *string) *cobra.Command {
	ride := &cobra.Command{Use: "ride", Short: "Control the active ride"}

	simple := func(use, short string, op func(ctx context.Context, app *bootstrap.App) (ridedto.StatusOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
					out, err := op(ctx, app)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), out, unitSystem(ctx, app))
					return nil
				})
			},
		}
	}

	startCmd := simple("start", "Start or resume a ride", func(ctx context.Context, app *bootstrap.App) (ridedto.StatusOutput, error) {
		return app.RideCLI.Start(ctx)
	})
	pauseCmd := simple("pause", "Pause the running ride", func(ctx context.Context, app *bootstrap.App) (ridedto.StatusOutput, error) {
		return app.RideCLI.Pause(ctx)
	})
	resumeCmd := simple("resume", "Resume the paused ride", func(ctx context.Context, app *bootstrap.App) (ridedto.StatusOutput, error) {
		return app.RideCLI.Resume(ctx)
	})
	statusCmd := simple("status", "Show the active ride", func(ctx context.Context, app *bootstrap.App) (ridedto.StatusOutput, error) {
		return app.RideCLI.Status(ctx)
	})

	var yes, abort bool
	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the ride and record it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				system := unitSystem(ctx, app)
				if abort {
					out, err := app.RideCLI.AbortStop(ctx)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), out, system)
					return nil
				}
				confirmed := yes
				if !confirmed {
					pending, err := app.RideCLI.BeginStop(ctx)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), pending, system)
					confirmed, err = confirm(cmd, "Stop ride?")
					if err != nil {
						return err
					}
					if !confirmed {
						if !pending.PausedByStop {
							printStatus(cmd.OutOrStdout(), pending, system)
							return nil
						}
						resumed, err := app.RideCLI.AbortStop(ctx)
						if err != nil {
							return err
						}
						printStatus(cmd.OutOrStdout(), resumed, system)
						return nil
					}
				}
				out, err := app.RideCLI.Stop(ctx, true)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded ride=%s time=%s distance=%s avg=%s note=%s\n",
					out.RideID,
					units.FormatDuration(out.Duration),
					units.FormatDistance(out.Distance, system),
					units.FormatSpeed(out.AverageSpeed, system),
					out.NotePath,
				)
				return nil
			})
		},
	}
	stopCmd.Flags().BoolVar(&yes, "yes", false, "stop without asking")
	stopCmd.Flags().BoolVar(&abort, "abort", false, "cancel a pending stop and keep riding")

	var meters, lat, lon float64
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Feed a distance sample to the track sampler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hasMeters := cmd.Flags().Changed("meters")
			hasFix := cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon")
			if hasMeters == hasFix {
				return fmt.Errorf("%w: pass either --meters or --lat and --lon", apperrors.ErrInvalidInput)
			}
			if hasFix && !(cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon")) {
				return fmt.Errorf("%w: --lat and --lon go together", apperrors.ErrInvalidInput)
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				var (
					out ridedto.StatusOutput
					err error
				)
				if hasMeters {
					out, err = app.RideCLI.TrackMeters(ctx, meters)
				} else {
					out, err = app.RideCLI.TrackFix(ctx, lat, lon)
				}
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), out, unitSystem(ctx, app))
				return nil
			})
		},
	}
	trackCmd.Flags().Float64Var(&meters, "meters", 0, "meters travelled since the last sample")
	trackCmd.Flags().Float64Var(&lat, "lat", 0, "latitude of a position fix")
	trackCmd.Flags().Float64Var(&lon, "lon", 0, "longitude of a position fix")

	ride.AddCommand(startCmd, pauseCmd, resumeCmd, statusCmd, stopCmd, trackCmd)
	return ride
}

func printRide(w io.Writer, ride historydto.RideOutput, system units.System) {
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
		ride.ID,
		units.FormatDate(ride.StartedAt),
		units.FormatDistance(ride.Distance, system),
		units.FormatDuration(ride.Duration),
		units.FormatSpeed(ride.AverageSpeed, system),
	)
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Browse completed rides"}

	var sort string
	var save bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List completed rides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HistoryCLI.List(ctx, sort, save)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(out.Rides) == 0 {
					_, _ = fmt.Fprintln(w, "No completed bike rides to display!")
					return nil
				}
				_, _ = fmt.Fprintf(w, "sorted by %s\n", out.SortLabel)
				system := unitSystem(ctx, app)
				for _, ride := range out.Rides {
					printRide(w, ride, system)
				}
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&sort, "sort", "", "sort key (defaults to the saved preference)")
	listCmd.Flags().BoolVar(&save, "save", false, "save --sort as the default")

	var showID string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show one ride",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				ride, err := app.HistoryCLI.Show(ctx, showID)
				if err != nil {
					return err
				}
				printRide(cmd.OutOrStdout(), ride, unitSystem(ctx, app))
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s note=%s\n", units.FormatRelative(ride.RecordedAt, time.Now()), ride.NotePath)
				return nil
			})
		},
	}
	showCmd.Flags().StringVar(&showID, "id", "", "ride id")
	_ = showCmd.MarkFlagRequired("id")

	var deleteID string
	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one ride",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HistoryCLI.Delete(ctx, deleteID, yes)
				if errors.Is(err, apperrors.ErrConfirmationRequired) {
					ok, promptErr := confirm(cmd, fmt.Sprintf("Delete ride %s?", deleteID))
					if promptErr != nil {
						return promptErr
					}
					if !ok {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "kept")
						return nil
					}
					out, err = app.HistoryCLI.Delete(ctx, deleteID, true)
				}
				if err != nil {
					return err
				}
				switch {
				case out.Deleted:
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", out.ID)
				case out.Decision == prefsdto.DeletionSkip:
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deletion is disabled in preferences")
				default:
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no ride %s\n", out.ID)
				}
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "ride id")
	deleteCmd.Flags().BoolVar(&yes, "yes", false, "delete without asking")
	_ = deleteCmd.MarkFlagRequired("id")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals across all rides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HistoryCLI.Summary(ctx)
				if err != nil {
					return err
				}
				system := unitSystem(ctx, app)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rides=%d distance=%s time=%s avg=%s longest=%s\n",
					out.Count,
					units.FormatDistance(out.TotalDistance, system),
					units.FormatDuration(out.TotalDuration),
					units.FormatSpeed(out.AverageSpeed, system),
					units.FormatDistance(out.LongestRide, system),
				)
				return nil
			})
		},
	}

	reindexCmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the ride index from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HistoryCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d rides\n", out.Rides)
				return nil
			})
		},
	}

	history.AddCommand(listCmd, showCmd, deleteCmd, summaryCmd, reindexCmd)
	return history
}

func printPrefs(w io.Writer, prefs prefsdto.PreferencesOutput) {
	_, _ = fmt.Fprintf(w, "units=%s\nsort=%s (%s)\nconfirm_delete=%t\ndeletion=%t (%s)\ncolour=%s\nlarge_metrics=%t\n",
		prefs.Units,
		prefs.Sort, prefs.SortLabel,
		prefs.DeletionConfirmation,
		prefs.DeletionEnabled, prefs.DeletionMode,
		prefs.Colour,
		prefs.LargeMetrics,
	)
}

func newPrefsCmd(dataDir *string) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Show or change preferences"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PrefsCLI.Get(ctx)
				if err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	var (
		unitsFlag, sortFlag, colourFlag string
		confirmDelete, deletion, large  bool
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var input prefsdto.UpdateInput
			if flags.Changed("units") {
				input.Units = &unitsFlag
			}
			if flags.Changed("sort") {
				input.Sort = &sortFlag
			}
			if flags.Changed("colour") {
				input.Colour = &colourFlag
			}
			if flags.Changed("confirm-delete") {
				input.DeletionConfirmation = &confirmDelete
			}
			if flags.Changed("deletion-enabled") {
				input.DeletionEnabled = &deletion
			}
			if flags.Changed("large-metrics") {
				input.LargeMetrics = &large
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PrefsCLI.Update(ctx, input)
				if err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&unitsFlag, "units", "", "metric|imperial")
	setCmd.Flags().StringVar(&sortFlag, "sort", "", "default history sort key")
	setCmd.Flags().StringVar(&colourFlag, "colour", "", "accent colour")
	setCmd.Flags().BoolVar(&confirmDelete, "confirm-delete", true, "ask before deleting rides")
	setCmd.Flags().BoolVar(&deletion, "deletion-enabled", true, "allow deleting rides")
	setCmd.Flags().BoolVar(&large, "large-metrics", false, "show large metrics on the ride view")

	prefs.AddCommand(showCmd, setCmd)
	return prefs
}

func newSamplerCmd(dataDir *string) *cobra.Command {
	sampler := &cobra.Command{Use: "sampler", Short: "Inspect the distance sampler"}
	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured sampler responds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.RideCLI.Sampler(ctx)
				if err != nil {
					return fmt.Errorf("sampler %s: %w", app.Config.Sampler, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sampler=%s name=%s version=%s ok\n", app.Config.Sampler, out.Name, out.Version)
				return nil
			})
		},
	}
	sampler.AddCommand(doctorCmd)
	return sampler
}
