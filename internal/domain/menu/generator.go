package menu

import (
	"sort"
	"time"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/errors"
)

const (
	ReasonNoCompliantCandidate = "no compliant candidate"
	ReasonVarietyExhausted     = "variety window exhausted"
)

// SlotFailure is a (date, meal type) the generator could not fill.
type SlotFailure struct {
	Date     time.Time
	MealType cacfp.MealType
	Reason   string
}

// Rejection is a candidate meal dropped before ranking because it is
// malformed or fails evaluation outright.
type Rejection struct {
	MealItemID string
	Reason     string
}

// GenerationResult is a best-effort menu plus the slots left unfilled.
type GenerationResult struct {
	Menu       *MonthlyMenu
	Failures   []SlotFailure
	Rejections []Rejection
}

func (r *GenerationResult) IsComplete() bool {
	return len(r.Failures) == 0
}

type Options struct {
	Lookback      int
	StrictVariety bool
}

// Generator assigns meals to service days. It is stateless between calls
// and safe for concurrent use.
type Generator struct {
	evaluator *cacfp.Evaluator
	opts      Options
}

func NewGenerator(evaluator *cacfp.Evaluator, opts Options) *Generator {
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	return &Generator{evaluator: evaluator, opts: opts}
}

func (g *Generator) Options() Options {
	return g.opts
}

type candidate struct {
	item    *catering.MealItem
	usedAlt bool
}

type poolKey struct {
	mealType cacfp.MealType
	vegan    bool
}

// candidatePool memoizes the eligible meals per (meal type, vegan) for
// one program.
type candidatePool struct {
	g          *Generator
	program    *catering.Program
	byType     map[cacfp.MealType][]*catering.MealItem
	eligible   map[poolKey][]candidate
	rejections []Rejection
	rejected   map[string]bool
}

func (g *Generator) newPool(program *catering.Program, items []*catering.MealItem) *candidatePool {
	p := &candidatePool{
		g:        g,
		program:  program,
		byType:   make(map[cacfp.MealType][]*catering.MealItem),
		eligible: make(map[poolKey][]candidate),
		rejected: make(map[string]bool),
	}
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.TenantID != program.TenantID {
			p.reject(item.ID, "meal item belongs to another tenant")
			continue
		}
		if err := item.Validate(); err != nil {
			p.reject(item.ID, err.Error())
			continue
		}
		p.byType[item.MealType] = append(p.byType[item.MealType], item)
	}
	return p
}

func (p *candidatePool) reject(id, reason string) {
	if p.rejected[id] {
		return
	}
	p.rejected[id] = true
	p.rejections = append(p.rejections, Rejection{MealItemID: id, Reason: reason})
}

// candidates resolves the component set once per meal and keeps only
// the meals whose resolved set is compliant for the program's age group.
func (p *candidatePool) candidates(mt cacfp.MealType, vegan bool) []candidate {
	key := poolKey{mealType: mt, vegan: vegan}
	if c, ok := p.eligible[key]; ok {
		return c
	}
	var out []candidate
	for _, item := range p.byType[mt] {
		portions, usedAlt, ok := item.ComponentsFor(vegan)
		if !ok {
			continue
		}
		report, err := p.g.evaluator.Evaluate(catering.MealComponents(portions), p.program.AgeGroupID, mt)
		if err != nil {
			p.reject(item.ID, err.Error())
			continue
		}
		if !report.IsCompliant() {
			continue
		}
		out = append(out, candidate{item: item, usedAlt: usedAlt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].item.ID < out[j].item.ID })
	p.eligible[key] = out
	return out
}

// fill assigns every required meal type on date, appending to history so
// later dates see the choice.
func (p *candidatePool) fill(date time.Time, mealTypes []cacfp.MealType, history History) (MenuDay, []SlotFailure) {
	day := NewMenuDay(date)
	var failures []SlotFailure
	vegan := p.program.RequiresVegan(date)

	for _, mt := range mealTypes {
		cands := p.candidates(mt, vegan)
		if len(cands) == 0 {
			failures = append(failures, SlotFailure{Date: day.Date, MealType: mt, Reason: ReasonNoCompliantCandidate})
			continue
		}

		ids := make([]string, len(cands))
		byID := make(map[string]candidate, len(cands))
		for i, c := range cands {
			ids[i] = c.item.ID
			byID[c.item.ID] = c
		}

		ranked := Rank(ids, history[mt], p.g.opts.Lookback, p.g.opts.StrictVariety)
		if len(ranked) == 0 {
			failures = append(failures, SlotFailure{Date: day.Date, MealType: mt, Reason: ReasonVarietyExhausted})
			continue
		}

		chosen := byID[ranked[0]]
		day.Assignments[mt] = Assignment{
			MealItemID:           chosen.item.ID,
			MealName:             chosen.item.Name,
			UsedVeganAlternative: chosen.usedAlt,
		}
		history.Append(mt, chosen.item.ID)
	}
	return day, failures
}

// Generate plans every service date of the month in ascending order.
// prior is the variety history carried in from before the month; it is
// not modified.
func (g *Generator) Generate(menuID string, program *catering.Program, year int, month time.Month,
	items []*catering.MealItem, prior History) (*GenerationResult, error) {

	if err := program.Validate(); err != nil {
		return nil, err
	}
	m, err := NewMonthlyMenu(menuID, program.TenantID, program.ID, year, month)
	if err != nil {
		return nil, err
	}

	days, failures, rejections := g.Plan(program, program.ServiceDates(year, month), items, prior)
	if err := m.ReplaceDays(days); err != nil {
		return nil, err
	}

	return &GenerationResult{Menu: m, Failures: failures, Rejections: rejections}, nil
}

// Plan fills the given dates, which must be ascending, and returns
// one MenuDay per date.
func (g *Generator) Plan(program *catering.Program, dates []time.Time, items []*catering.MealItem,
	prior History) ([]MenuDay, []SlotFailure, []Rejection) {

	pool := g.newPool(program, items)
	history := prior.Clone()
	mealTypes := program.OrderedMealTypes()

	days := make([]MenuDay, 0, len(dates))
	var failures []SlotFailure
	for _, d := range dates {
		day, f := pool.fill(d, mealTypes, history)
		days = append(days, day)
		failures = append(failures, f...)
	}
	return days, failures, pool.rejections
}

// RegenerateDay re-plans one existing date of a draft menu. The variety
// history is prior followed by the menu's days before date, so repeated
// calls with the same inputs choose the same meals. When mealTypes is
// empty every required meal type is re-planned; otherwise the other
// assignments of the day are kept.
func (g *Generator) RegenerateDay(m *MonthlyMenu, program *catering.Program, date time.Time,
	mealTypes []cacfp.MealType, items []*catering.MealItem, prior History) (*MenuDay, []SlotFailure, error) {

	if m.IsFinalized() {
		return nil, nil, errors.NewInvalidStateError("monthly menu is finalized", m.ID())
	}
	if !m.Contains(date) {
		return nil, nil, errors.NewValidationError("date outside menu month", biztime.FormatDate(date))
	}
	current, ok := m.Day(date)
	if !ok {
		return nil, nil, errors.NewInvalidStateError("date is not a service day of this menu", biztime.FormatDate(date))
	}
	if program.ID != m.ProgramID() {
		return nil, nil, errors.NewValidationError("program does not own this menu")
	}

	targets := program.OrderedMealTypes()
	if len(mealTypes) > 0 {
		wanted := make(map[cacfp.MealType]bool, len(mealTypes))
		for _, mt := range mealTypes {
			if !mt.IsValid() {
				return nil, nil, errors.NewValidationError("meal type not recognized", string(mt))
			}
			wanted[mt] = true
		}
		var filtered []cacfp.MealType
		for _, mt := range targets {
			if wanted[mt] {
				filtered = append(filtered, mt)
			}
		}
		if len(filtered) == 0 {
			return nil, nil, errors.NewValidationError("program does not serve the requested meal types")
		}
		targets = filtered
	}

	var before []MenuDay
	for _, d := range m.Days() {
		if d.Date.Before(current.Date) {
			before = append(before, d)
		}
	}
	history := prior.Merge(HistoryFromDays(before))

	pool := g.newPool(program, items)
	fresh, failures := pool.fill(current.Date, targets, history)

	if len(mealTypes) > 0 {
		// keep untouched assignments, drop the targeted ones that could not be refilled
		for _, mt := range targets {
			delete(current.Assignments, mt)
		}
		for mt, a := range fresh.Assignments {
			current.Assignments[mt] = a
		}
		fresh = current
	}

	if err := m.ReplaceDay(fresh); err != nil {
		return nil, nil, err
	}
	return &fresh, failures, nil
}
