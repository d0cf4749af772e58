// Package terminal is the command-line surface of the runner.
package terminal

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"signup_e2e/application/flows"
	"signup_e2e/application/pages"
	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
	"signup_e2e/infrastructure/browser"
	"signup_e2e/infrastructure/config"
	"signup_e2e/infrastructure/security"
	"signup_e2e/infrastructure/storage"
)

// PageOpener starts a browser page for env. The returned func releases it.
type PageOpener func(env *config.Environment, logger *logrus.Logger) (interfaces.BrowserPage, func() error, error)

// TerminalInterface wires configuration, browser and flows behind cobra
// commands
type TerminalInterface struct {
	root     *cobra.Command
	env      *config.Environment
	logger   *logrus.Logger
	security *security.SecurityLayer
	openPage PageOpener
	install  func(logger *logrus.Logger) error

	envName     string
	headless    bool
	screenshots bool
	approved    bool
}

// NewTerminalInterface - builds the command tree backed by a real browser
func NewTerminalInterface() *TerminalInterface {
	return newTerminalInterface(openBrowserPage, browser.Install)
}

func newTerminalInterface(open PageOpener, install func(*logrus.Logger) error) *TerminalInterface {
	t := &TerminalInterface{openPage: open, install: install}

	t.root = &cobra.Command{
		Use:           "signup-e2e",
		Short:         "Runs the signup and account end-to-end flows",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return t.setup(cmd)
		},
	}
	t.root.PersistentFlags().StringVarP(&t.envName, "env", "e", "", "environment: local, staging or production (default $TEST_ENV or staging)")
	t.root.PersistentFlags().BoolVar(&t.headless, "headless", true, "run the browser without a window")
	t.root.PersistentFlags().BoolVar(&t.screenshots, "screenshots", false, "capture screenshots at each milestone")
	t.root.PersistentFlags().BoolVarP(&t.approved, "yes", "y", false, "approve flows that need consent, e.g. signups in production")

	t.root.AddCommand(t.installCommand(), t.signupCommand(), t.sampleCommand(), t.resultsCommand())
	return t
}

// Command - returns the root command
func (t *TerminalInterface) Command() *cobra.Command {
	return t.root
}

// Run - executes the command line in args
func (t *TerminalInterface) Run(ctx context.Context, args ...string) error {
	if args != nil {
		t.root.SetArgs(args)
	}
	return t.root.ExecuteContext(ctx)
}

func (t *TerminalInterface) setup(cmd *cobra.Command) error {
	env, err := config.Load(t.envName)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("headless") {
		env.Headless = t.headless
	}

	t.env = env
	t.logger = config.NewLogger(env.LogLevel, cmd.ErrOrStderr())
	t.security = security.NewSecurityLayer(t.logger)
	t.logger.WithFields(logrus.Fields{
		"env":      env.Name,
		"base_url": env.BaseURL,
	}).Debug("Configuration loaded")
	return nil
}

func (t *TerminalInterface) installCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download the Chromium build used by the runner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := t.install(t.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Browser installed")
			return nil
		},
	}
}

func (t *TerminalInterface) signupCommand() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Sign a new user up and verify the account page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.runFlow(cmd, "signup", func(fx *pages.Fixtures, store interfaces.ResultStore) (entities.TestResult, error) {
				// fresh data per attempt, a retried signup must not reuse an email
				data := entities.GenerateTestUserData()
				if name != "" {
					data.Name = name
				}
				if email != "" {
					data.Email = email
				}
				if password != "" {
					data.Password = password
					data.ConfirmPassword = password
				}
				return flows.NewSignupFlow(fx, store, t.logger, t.flowOptions()).Run(cmd.Context(), data)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name (default generated)")
	cmd.Flags().StringVar(&email, "email", "", "email address (default generated)")
	cmd.Flags().StringVar(&password, "password", "", "password (default test password)")
	return cmd
}

func (t *TerminalInterface) sampleCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Submit the sample form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.runFlow(cmd, "sample", func(fx *pages.Fixtures, store interfaces.ResultStore) (entities.TestResult, error) {
				return flows.NewSampleFlow(fx, store, t.logger, t.flowOptions()).Run(cmd.Context(), name)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", entities.DefaultFullName, "name to submit")
	return cmd
}

func (t *TerminalInterface) resultsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List recorded flow results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewResultLog(t.env.ResultsDir)
			if err != nil {
				return err
			}
			results, err := store.LoadResults()
			if err != nil {
				return err
			}
			if limit > 0 && len(results) > limit {
				results = results[len(results)-limit:]
			}
			return printResults(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent results")
	return cmd
}

func (t *TerminalInterface) flowOptions() flows.Options {
	return flows.Options{Screenshots: t.screenshots}
}

// runFlow - runs one flow, re-running it on failure up to the
// environment's retry count. Every flow run from here submits a form.
func (t *TerminalInterface) runFlow(cmd *cobra.Command, name string, run flowRunner) error {
	info := entities.FlowInfo{Name: name, Environment: t.env.Name, CreatesData: true}
	if err := t.security.Check(cmd.Context(), info, t.approved); err != nil {
		return fmt.Errorf("%w (rerun with --yes)", err)
	}

	store, err := storage.NewResultLog(t.env.ResultsDir)
	if err != nil {
		return err
	}

	attempts := t.env.Retries + 1
	var runErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			t.logger.WithFields(logrus.Fields{
				"flow":    name,
				"attempt": attempt,
			}).Warnf("Retrying flow: %v", runErr)
		}

		var openErr error
		runErr, openErr = t.runAttempt(cmd, store, run)
		if openErr != nil {
			return openErr
		}
		if runErr == nil || cmd.Context().Err() != nil {
			return runErr
		}
	}
	return runErr
}

type flowRunner func(*pages.Fixtures, interfaces.ResultStore) (entities.TestResult, error)

// runAttempt - opens a fresh page, runs the flow once and prints the
// result. openErr is set when no browser could be started.
func (t *TerminalInterface) runAttempt(cmd *cobra.Command, store interfaces.ResultStore, run flowRunner) (runErr, openErr error) {
	page, release, err := t.openPage(t.env, t.logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			t.logger.WithError(err).Warn("Failed to close browser")
		}
	}()

	result, runErr := run(pages.NewFixtures(page, t.env, t.logger), store)
	if err := printResults(cmd.OutOrStdout(), []entities.TestResult{result}); err != nil {
		return nil, err
	}
	return runErr, nil
}

func printResults(out io.Writer, results []entities.TestResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(out, "No results recorded")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTEST\tSTATUS\tDURATION\tUSER\tERROR")
	for _, r := range results {
		user := "-"
		if r.User != nil {
			user = r.User.Email
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Timestamp.Local().Format(time.DateTime),
			r.TestName,
			r.Status,
			r.Duration.Round(time.Millisecond),
			user,
			r.Error,
		)
	}
	return w.Flush()
}

func openBrowserPage(env *config.Environment, logger *logrus.Logger) (interfaces.BrowserPage, func() error, error) {
	session, err := browser.NewSession(env, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize browser: %w", err)
	}
	return session.Page(), session.Close, nil
}
