package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cashier/internal/advice"
	"cashier/internal/backend"
	"cashier/internal/cli"
	"cashier/internal/core"
	"cashier/internal/export"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateService(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize sync service", "error", err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Cleanup failed", "error", err)
			}
		}()
	}

	advisor, err := advice.NewFromEnv(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize advice generator", "error", err)
		os.Exit(1)
	}

	a := &app{svc: result.Service, advisor: advisor, out: os.Stdout}
	a.resubscribe(ctx)
	defer a.teardown()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.run(ctx, os.Stdin)
	})
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Session ended with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Goodbye")
}

// app holds the interactive session: current identity, the latest snapshots
// delivered by the facade, and the disposers for the active subscriptions.
type app struct {
	svc     *backend.Service
	advisor *advice.Advisor
	out     io.Writer

	mu           sync.Mutex
	userID       string
	transactions []core.Transaction
	budgets      []core.Budget
	categories   []core.Category
	filterStart  time.Time
	filterEnd    time.Time
	disposers    []func()
}

// resubscribe tears down all subscriptions for the previous identity before
// establishing new ones, so a mode switch never leaves a stale callback.
func (a *app) resubscribe(ctx context.Context) {
	a.teardown()

	a.mu.Lock()
	userID := a.userID
	a.mu.Unlock()

	onError := func(err error) {
		fmt.Fprintf(a.out, "subscription error: %v\n", err)
	}

	unTx := a.svc.SubscribeTransactions(ctx, userID, func(txs []core.Transaction) {
		a.mu.Lock()
		a.transactions = txs
		a.mu.Unlock()
	}, onError)
	unBudgets := a.svc.SubscribeBudgets(ctx, userID, func(budgets []core.Budget) {
		a.mu.Lock()
		a.budgets = budgets
		a.mu.Unlock()
	}, onError)
	unCats := a.svc.SubscribeCategories(ctx, userID, func(cats []core.Category) {
		a.mu.Lock()
		a.categories = cats
		a.mu.Unlock()
	}, onError)

	a.mu.Lock()
	a.disposers = []func(){unTx, unBudgets, unCats}
	a.mu.Unlock()
}

func (a *app) teardown() {
	a.mu.Lock()
	disposers := a.disposers
	a.disposers = nil
	a.mu.Unlock()
	for _, dispose := range disposers {
		dispose()
	}
}

const prompt = "cashier> "

func (a *app) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(a.out, "Cashier sync console. Type 'help' for commands, 'quit' to exit.")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(a.out, prompt)
		if !scanner.Scan() {
			return scanner.Err() // EOF is a clean exit
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "bye" {
			return nil
		}

		if err := a.handle(ctx, line); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (a *app) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		a.printHelp()
	case "login":
		if len(args) != 1 {
			return fmt.Errorf("usage: login <user-id>")
		}
		a.mu.Lock()
		a.userID = args[0]
		a.mu.Unlock()
		a.resubscribe(ctx)
		fmt.Fprintf(a.out, "signed in as %s\n", args[0])
	case "logout":
		a.mu.Lock()
		a.userID = ""
		a.mu.Unlock()
		a.resubscribe(ctx)
		fmt.Fprintln(a.out, "signed out, using local storage")
	case "add":
		return a.cmdAdd(ctx, args)
	case "del":
		if len(args) != 1 {
			return fmt.Errorf("usage: del <transaction-id>")
		}
		return a.svc.DeleteTransaction(ctx, a.currentUser(), args[0])
	case "list":
		a.printTransactions()
	case "budget":
		return a.cmdBudget(ctx, args)
	case "delbudget":
		if len(args) != 1 {
			return fmt.Errorf("usage: delbudget <budget-id>")
		}
		return a.svc.DeleteBudget(ctx, a.currentUser(), args[0])
	case "budgets":
		a.printBudgets()
	case "cat":
		return a.cmdCategory(ctx, args)
	case "cats":
		a.printCategories()
	case "filter":
		return a.cmdFilter(args)
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("usage: export <file>")
		}
		return a.cmdExport(args[0])
	case "advice":
		return a.cmdAdvice(ctx)
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	return nil
}

func (a *app) currentUser() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}

func (a *app) visibleTransactions() []core.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return core.FilterByDateRange(a.transactions, a.filterStart, a.filterEnd)
}

func (a *app) cmdAdd(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: add <amount> <inflow|outflow> <category> <title...>")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad amount %q: %w", args[0], err)
	}
	ft := core.FlowType(args[1])
	if !ft.IsValid() {
		return core.ErrInvalidFlowType
	}
	title := strings.Join(args[3:], " ")
	return a.svc.AddTransaction(ctx, a.currentUser(), title, amount, ft, args[2])
}

func (a *app) cmdBudget(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: budget <limit> <category...>")
	}
	limit, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad limit %q: %w", args[0], err)
	}
	return a.svc.SaveBudget(ctx, a.currentUser(), strings.Join(args[1:], " "), limit)
}

func (a *app) cmdCategory(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: cat add <inflow|outflow> <name...> | cat del <id>")
	}
	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: cat add <inflow|outflow> <name...>")
		}
		ft := core.FlowType(args[1])
		if !ft.IsValid() {
			return core.ErrInvalidFlowType
		}
		return a.svc.AddCategory(ctx, a.currentUser(), strings.Join(args[2:], " "), ft)
	case "del":
		return a.svc.DeleteCategory(ctx, a.currentUser(), args[1])
	default:
		return fmt.Errorf("unknown cat subcommand %q", args[0])
	}
}

func (a *app) cmdFilter(args []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(args) == 1 && args[0] == "clear" {
		a.filterStart, a.filterEnd = time.Time{}, time.Time{}
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: filter <start YYYY-MM-DD> <end YYYY-MM-DD> | filter clear")
	}
	start, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return fmt.Errorf("bad start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", args[1])
	if err != nil {
		return fmt.Errorf("bad end date: %w", err)
	}
	a.filterStart, a.filterEnd = start, end
	return nil
}

func (a *app) cmdExport(path string) error {
	data, err := export.Bytes(a.visibleTransactions())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(a.out, "exported to %s\n", path)
	return nil
}

func (a *app) cmdAdvice(ctx context.Context) error {
	if !a.advisor.Enabled() {
		// Feature is hidden when unconfigured, not an error.
		return nil
	}
	text, err := a.advisor.Advise(ctx, a.visibleTransactions())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

func (a *app) printTransactions() {
	txs := a.visibleTransactions()
	summary := core.Summarize(txs)
	for _, t := range txs {
		fmt.Fprintf(a.out, "%s  %-10s %10.2f  %-24s %s\n",
			t.Date.Format("2006-01-02"), t.Type, t.Amount, t.Category, t.Title)
	}
	fmt.Fprintf(a.out, "income %.2f | expense %.2f | balance %.2f (%d shown)\n",
		summary.TotalIncome, summary.TotalExpense, summary.Balance, len(txs))
}

func (a *app) printBudgets() {
	a.mu.Lock()
	budgets := a.budgets
	a.mu.Unlock()
	spent := core.SpentByCategory(a.visibleTransactions())
	for _, b := range budgets {
		fmt.Fprintf(a.out, "%-32s limit %10.2f  spent %10.2f  [%s]\n",
			b.Category, b.Limit, spent[b.Category], b.ID)
	}
}

func (a *app) printCategories() {
	a.mu.Lock()
	cats := a.categories
	a.mu.Unlock()
	for _, c := range cats {
		fmt.Fprintf(a.out, "%-10s %-32s [%s]\n", c.Type, c.Name, c.ID)
	}
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `commands:
  login <user-id> | logout        switch between remote and local mode
  add <amount> <inflow|outflow> <category> <title...>
  del <transaction-id>
  list                            show filtered transactions and summary
  budget <limit> <category...>    upsert a budget goal
  delbudget <budget-id>
  budgets                         show budgets with spent amounts
  cat add <inflow|outflow> <name...> | cat del <id>
  cats                            show categories
  filter <start> <end> | filter clear
  export <file>                   write visible transactions as CSV
  advice                          ask the financial advisor
  quit
`)
}
