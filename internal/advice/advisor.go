// Package advice wraps the Gemini-backed financial advisor. The generator is
// an opaque collaborator: it takes the currently visible transaction snapshot
// and returns a text. Without an API key the feature is simply absent.
package advice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"cashier/internal/cache"
	"cashier/internal/config"
	"cashier/internal/core"
)

// ErrNotConfigured is returned when Advise is called without an API key.
// Callers should consult Enabled and hide the feature instead.
var ErrNotConfigured = errors.New("advice generator not configured")

// EmptyAdvice is the canned response for an empty snapshot. An empty
// transaction set is valid input, not an error.
const EmptyAdvice = "কোনো লেনদেন পাওয়া যায়নি। আগে কিছু আয় বা ব্যয় যোগ করুন। (No transactions yet — add some income or expenses first.)"

type Advisor struct {
	client *genai.Client // nil when disabled
	model  string
	cache  *cache.Cache[string]
}

// NewFromEnv builds an Advisor from configuration. A missing API key yields
// a disabled advisor, not an error.
func NewFromEnv(ctx context.Context, cfg *config.Config) (*Advisor, error) {
	if !cfg.AdviceConfigured() {
		slog.Info("Advice generator disabled, no API key configured")
		return &Advisor{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	return &Advisor{
		client: client,
		model:  cfg.GeminiModel,
		cache:  cache.New[string](64, cfg.AdviceCacheTTL),
	}, nil
}

// Enabled reports whether advice can be generated.
func (a *Advisor) Enabled() bool {
	return a.client != nil
}

// Advise produces advice for the given snapshot. Identical snapshots within
// the cache TTL reuse the previous response.
func (a *Advisor) Advise(ctx context.Context, txs []core.Transaction) (string, error) {
	if !a.Enabled() {
		return "", ErrNotConfigured
	}
	if len(txs) == 0 {
		return EmptyAdvice, nil
	}

	key := fingerprint(txs)
	if cached, ok := a.cache.Get(key); ok {
		return cached, nil
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(buildPrompt(txs)), nil)
	if err != nil {
		return "", fmt.Errorf("generate advice: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty advice response")
	}

	a.cache.Set(key, text)
	return text, nil
}

// buildPrompt summarizes the snapshot for the model. The persona and the
// output constraints come from the product's advisor definition.
func buildPrompt(txs []core.Transaction) string {
	var lines strings.Builder
	for _, t := range txs {
		fmt.Fprintf(&lines, "- %s: %s (%s) - %.2f৳\n",
			t.Date.Format(time.RFC3339), t.Title, flowLabel(t.Type), t.Amount)
	}

	return fmt.Sprintf(`তুমি হলে 'উবাইদি ফাইন্যান্সিয়াল অ্যাডভাইজার' (Ubaidi Financial Advisor). নিচের লেনদেনগুলো বিশ্লেষণ করো। মুদ্রা: বাংলাদেশী টাকা (৳)।

লেনদেনসমূহ:
%s
দয়া করে বাংলায় নিচের বিষয়গুলো দাও:
১. বর্তমান আর্থিক অবস্থার একটি সংক্ষিপ্ত সারসংক্ষেপ।
২. টাকা জমানোর বা খরচ কমানোর ৩টি সুনির্দিষ্ট ও কার্যকরী পরামর্শ।
৩. ভাষা হবে উৎসাহব্যঞ্জক এবং পেশাদার।
৪. উত্তর ১৫০ শব্দের মধ্যে হতে হবে।`, lines.String())
}

func flowLabel(ft core.FlowType) string {
	if ft == core.Inflow {
		return "আয়/Income"
	}
	return "ব্যয়/Expense"
}

// fingerprint identifies a snapshot by content, not by slice identity.
func fingerprint(txs []core.Transaction) string {
	h := sha256.New()
	for _, t := range txs {
		fmt.Fprintf(h, "%s|%s|%.2f|%s|%d\n", t.ID, t.Title, t.Amount, t.Type, t.Date.UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil))
}
