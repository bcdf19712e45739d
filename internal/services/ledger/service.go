// Package ledger prices and executes point spending. Every mutation of a
// currency balance goes through Spend, which applies a batch atomically
// and leaves an audit record per purchase.
package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/veilwright/wod-chargen/internal/clients/catalog"
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/errors"
	"github.com/veilwright/wod-chargen/internal/services/eligibility"
)

// Violation codes the ledger adds on top of the budget package's.
const (
	CodeUnknownCategory   = "unknown_category"
	CodeInsufficientFunds = "insufficient_funds"
	CodeInvalidChange     = "invalid_change"
	CodeFlawFloor         = "flaw_floor"
)

// SpendRequest asks to move one trait to a new rating.
type SpendRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`

	// NewValue is the target rating. For level-bought powers (gifts,
	// charms) it is the level being purchased. Negative for flaws.
	NewValue int `json:"new_value"`

	Currency character.Currency `json:"currency,omitempty"`

	// Note and Pooled apply to backgrounds only.
	Note   string `json:"note,omitempty"`
	Pooled bool   `json:"pooled,omitempty"`
}

// Service prices trait changes and executes spends.
type Service interface {
	// Cost prices a single request without applying it.
	Cost(ctx context.Context, char *character.Character, cfg *rulebook.Config, req SpendRequest) (int, error)

	// Spend applies a batch of requests all-or-nothing. On any
	// violation the character is left untouched and the violations are
	// returned; an empty slice means every request applied.
	Spend(ctx context.Context, char *character.Character, cfg *rulebook.Config, reqs []SpendRequest) ([]budget.Violation, error)

	// AffordableCategories lists the categories in which the character
	// can still afford the cheapest possible purchase. Recomputed from
	// the live balance on every call.
	AffordableCategories(ctx context.Context, char *character.Character, cfg *rulebook.Config, currency character.Currency) ([]string, error)
}

// ServiceConfig holds the service dependencies.
type ServiceConfig struct {
	Catalog     catalog.Client
	Eligibility eligibility.Service
}

type service struct {
	catalog     catalog.Client
	eligibility eligibility.Service
	now         func() time.Time
}

// NewService creates a ledger service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Catalog == nil {
		return nil, errors.InvalidArgument("catalog client cannot be nil")
	}
	if cfg.Eligibility == nil {
		return nil, errors.InvalidArgument("eligibility service cannot be nil")
	}
	return &service{
		catalog:     cfg.Catalog,
		eligibility: cfg.Eligibility,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// selfNamed categories have no catalog listing; the trait name is the
// category's single well-known trait (Willpower, Humanity, Rage, ...).
var selfNamed = map[string]struct{}{
	"willpower":       {},
	"humanity":        {},
	"path_rating":     {},
	"virtue":          {},
	"rage":            {},
	"gnosis":          {},
	"arete":           {},
	"quintessence":    {},
	"resonance":       {},
	"glamour":         {},
	"banality":        {},
	"faith":           {},
	"pathos":          {},
	"passion":         {},
	"fetter":          {},
	"faith_potential": {},
	"rite":            {},
	"ritual":          {},
}

func (s *service) Cost(ctx context.Context, char *character.Character, cfg *rulebook.Config, req SpendRequest) (int, error) {
	rule, ok := cfg.Costs.Rule(req.Category)
	if !ok {
		return 0, errors.InvalidArgumentf("archetype %q cannot spend on %q", cfg.Archetype, req.Category)
	}

	current := currentValue(char, req)

	var cost int
	if req.Currency == character.CurrencyExperience {
		c, err := s.xpCost(ctx, char, cfg, rule, req, current)
		if err != nil {
			return 0, err
		}
		cost = c
	} else {
		cost = freebieCost(rule, req, current)
	}

	// Expensive backgrounds scale every dot by their catalog multiplier.
	if req.Category == "background" {
		mult, err := s.backgroundMultiplier(ctx, req)
		if err != nil {
			return 0, err
		}
		cost *= mult
	}
	return cost, nil
}

func (s *service) backgroundMultiplier(ctx context.Context, req SpendRequest) (int, error) {
	example, err := s.catalog.GetExample(ctx, req.Category, req.Name)
	if err != nil {
		if errors.IsNotFound(err) {
			return 1, nil
		}
		return 0, err
	}
	return example.CostMultiplier(), nil
}

func freebieCost(rule rulebook.CostRule, req SpendRequest, current int) int {
	delta := req.NewValue - current
	switch {
	case rule.FreebieIsRating:
		// Merits cost their rating; flaws are negative and credit.
		return delta
	case rule.FreebieDotsPerPoint > 0:
		per := rule.FreebieDotsPerPoint
		return (delta + per - 1) / per
	default:
		return rule.Freebie * delta
	}
}

func (s *service) xpCost(ctx context.Context, char *character.Character, cfg *rulebook.Config, rule rulebook.CostRule, req SpendRequest, current int) (int, error) {
	if rule.XPDeltaMult > 0 {
		return rule.XPDeltaMult * abs(req.NewValue-current), nil
	}

	mult, err := s.groupMult(ctx, char, cfg, rule, req)
	if err != nil {
		return 0, err
	}

	if rule.XPLevelBased {
		return mult * req.NewValue, nil
	}

	// Dot by dot: the first dot of a new trait has a flat price, every
	// later dot costs the current rating times the multiplier.
	cost := 0
	for v := current; v < req.NewValue; v++ {
		if v == 0 && rule.XPNewFlat > 0 {
			cost += rule.XPNewFlat
			continue
		}
		if v == 0 {
			cost += mult
			continue
		}
		cost += mult * v
	}
	return cost, nil
}

// groupMult resolves the per-dot multiplier from the buyer's relation to
// the trait: the native rate, the out-of-group rate, or the no-relation
// rate for characters without the relevant relation at all.
func (s *service) groupMult(ctx context.Context, char *character.Character, cfg *rulebook.Config, rule rulebook.CostRule, req SpendRequest) (int, error) {
	if rule.XPOutOfGroupMult == 0 {
		return rule.XPMult, nil
	}

	elig := cfg.EligibilityFor(req.Category)

	hasValue := false
	for _, kind := range elig.Relations {
		value := char.Relation(kind)
		if value == "" {
			continue
		}
		hasValue = true

		example, err := s.catalog.GetExample(ctx, req.Category, req.Name)
		if err != nil {
			if errors.IsNotFound(err) {
				break
			}
			return 0, err
		}
		if example.Name == value || example.HasTag(value) {
			return rule.XPMult, nil
		}
	}

	if !hasValue && rule.XPNoRelationMult > 0 {
		return rule.XPNoRelationMult, nil
	}
	return rule.XPOutOfGroupMult, nil
}

func (s *service) Spend(ctx context.Context, char *character.Character, cfg *rulebook.Config, reqs []SpendRequest) ([]budget.Violation, error) {
	work := char.Clone()

	var violations []budget.Violation
	for _, req := range reqs {
		v, err := s.applyOne(ctx, work, cfg, req)
		if err != nil {
			return nil, err
		}
		violations = append(violations, v...)
	}

	if len(violations) > 0 {
		return violations, nil
	}

	*char = *work
	return nil, nil
}

func (s *service) applyOne(ctx context.Context, work *character.Character, cfg *rulebook.Config, req SpendRequest) ([]budget.Violation, error) {
	rule, ok := cfg.Costs.Rule(req.Category)
	if !ok {
		return []budget.Violation{{
			Field:   req.Category,
			Code:    CodeUnknownCategory,
			Message: "archetype cannot spend on " + req.Category,
		}}, nil
	}

	if _, self := selfNamed[req.Category]; !self {
		eligible, err := s.eligibility.IsEligible(ctx, work, cfg, req.Category, req.Name)
		if err != nil {
			return nil, err
		}
		if !eligible {
			return []budget.Violation{{
				Field:   req.Name,
				Code:    budget.CodeIneligibleKey,
				Message: req.Name + " is not available to this character",
			}}, nil
		}
	}

	current := currentValue(work, req)

	if v := s.validateChange(ctx, work, cfg, rule, req, current); v != nil {
		return v, nil
	}

	cost, err := s.Cost(ctx, work, cfg, req)
	if err != nil {
		return nil, err
	}

	if !work.Debit(req.Currency, cost) {
		return []budget.Violation{{
			Field:   req.Name,
			Code:    CodeInsufficientFunds,
			Message: req.Name + " costs more than the remaining balance",
		}}, nil
	}

	applyValue(work, req)

	if req.Category == "meritflaw" && work.TotalFlaws() < cfg.MaxFlawPoints {
		return []budget.Violation{{
			Field:   req.Name,
			Code:    CodeFlawFloor,
			Message: "flaw total exceeds the allowed limit",
		}}, nil
	}

	work.AddSpendRecord(character.SpendRecord{
		Category:     req.Category,
		Example:      req.Name,
		Currency:     req.Currency,
		Cost:         cost,
		PrevValue:    current,
		NewValue:     req.NewValue,
		BalanceAfter: work.Balance(req.Currency),
		CreatedAt:    s.now(),
	})
	return nil, nil
}

func (s *service) validateChange(ctx context.Context, work *character.Character, cfg *rulebook.Config, rule rulebook.CostRule, req SpendRequest, current int) []budget.Violation {
	invalid := func(msg string) []budget.Violation {
		return []budget.Violation{{Field: req.Name, Code: CodeInvalidChange, Message: msg}}
	}

	if req.NewValue == current {
		return invalid(req.Name + " is already at that rating")
	}

	if req.Category == "meritflaw" {
		// A merit or flaw is taken at its catalog rating or bought off
		// entirely.
		example, err := s.catalog.GetExample(ctx, req.Category, req.Name)
		if err == nil && req.NewValue != 0 && req.NewValue != example.Level {
			return invalid(req.Name + " has a fixed rating")
		}
		if req.NewValue == 0 && req.Currency == character.CurrencyFreebie {
			return invalid("flaws and merits cannot be removed during creation")
		}
		return nil
	}

	if req.NewValue < current {
		return invalid(req.Name + " cannot be lowered")
	}

	max := rule.Max
	if work.Lifecycle == character.StateUnfinished && rule.CreationMax > 0 && rule.CreationMax < max {
		max = rule.CreationMax
	}
	// Pooled backgrounds are funded by the whole group and may outgrow
	// the individual cap.
	if max > 0 && req.NewValue > max && !(req.Category == "background" && req.Pooled) {
		return []budget.Violation{{
			Field:   req.Name,
			Code:    budget.CodeOutOfBounds,
			Message: req.Name + " cannot be raised that high",
		}}
	}
	return nil
}

func currentValue(char *character.Character, req SpendRequest) int {
	switch req.Category {
	case "background":
		bg := char.Background(backgroundKey(req))
		if bg == nil {
			return 0
		}
		return bg.Rating
	case "meritflaw":
		return char.MeritsFlaws[req.Name]
	default:
		return char.Trait(req.Name)
	}
}

func applyValue(char *character.Character, req SpendRequest) {
	switch req.Category {
	case "background":
		key := backgroundKey(req)
		if bg := char.Background(key); bg != nil {
			bg.Rating = req.NewValue
			return
		}
		char.AddBackground(&character.BackgroundRating{
			Name:   req.Name,
			Rating: req.NewValue,
			Note:   req.Note,
			Pooled: req.Pooled,
		})
	case "meritflaw":
		if req.NewValue == 0 {
			delete(char.MeritsFlaws, req.Name)
			return
		}
		char.MeritsFlaws[req.Name] = req.NewValue
	default:
		char.SetTrait(req.Name, req.NewValue)
	}
}

func backgroundKey(req SpendRequest) string {
	if req.Note == "" {
		return req.Name
	}
	return req.Name + " (" + req.Note + ")"
}

func (s *service) AffordableCategories(_ context.Context, char *character.Character, cfg *rulebook.Config, currency character.Currency) ([]string, error) {
	balance := char.Balance(currency)

	var out []string
	for category, rule := range cfg.Costs {
		min, ok := minimumCost(rule, currency)
		if ok && min <= balance {
			out = append(out, category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// minimumCost is the cheapest conceivable purchase in a category, used
// only to decide whether the category is worth offering. A category not
// priced in the currency at all reports ok false: passions and fetters
// buy with freebies only and never show up for experience.
func minimumCost(rule rulebook.CostRule, currency character.Currency) (int, bool) {
	if currency == character.CurrencyFreebie {
		switch {
		case rule.FreebieIsRating:
			// A flaw is always affordable; it credits the pool.
			return 0, true
		case rule.FreebieDotsPerPoint > 0:
			return 1, true
		default:
			return rule.Freebie, rule.Freebie > 0
		}
	}

	min := 0
	consider := func(v int) {
		if v > 0 && (min == 0 || v < min) {
			min = v
		}
	}
	consider(rule.XPMult)
	consider(rule.XPNewFlat)
	consider(rule.XPDeltaMult)
	return min, min > 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
