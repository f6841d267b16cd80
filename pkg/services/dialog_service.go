package services

import (
	"strings"

	"retailx-assistant/pkg/models"
)

// Prompt and menu strings. Like the reply strings in query_service.go these
// are wire-stable: the frontend and regression suites match on them.
const (
	MenuText = "Welcome to RetailX Assistant! How can I assist you today?\n" +
		"1. Check Product Availability\n" +
		"2. Track Order\n" +
		"3. Find Nearest Store\n" +
		"4. Get Personalized Recommendations\n" +
		"5. Customer Support\n" +
		"Please type the number of the service you need."

	PromptProductName = "Please provide the product name."
	PromptProductID   = "Please provide your ProductID to track your order."
	PromptCity        = "Please provide your City to find the nearest store."
	PromptCategory    = "\nPlease type the category you're interested in."
	PromptPrice       = "Please provide your approximate price for recommendations."
	PromptSupport     = "Please provide your CustomerID and the nature of your support inquiry."

	AskAnotherProduct  = "\nDo you want to check another product? (Yes/No)"
	AskAnotherOrder    = "\nDo you want to check another order? (Yes/No)"
	AskAnotherLocation = "\nDo you want to check another location? (Yes/No)"
	AskAnotherPrice    = "\nDo you want to check another category or price? (Yes/No)"
	AskAnotherInquiry  = "\nDo you have another inquiry? (Yes/No)"

	MsgInvalidInquiry = "Invalid input. Please provide your CustomerID and your inquiry separated by a comma."
)

// DialogService is the turn-processing engine: given the user token and the
// caller-carried session it produces the reply and mutates the carrier to the
// next context.
//
// Dispatch is a single ordered guard list; the FIRST matching rule wins. The
// order encodes the conversation contract: flow N's menu token is checked
// before flow N's context rules but after flow N-1's, so a literal "2" typed
// while a product name is expected is treated as a product name, not as a
// menu selection.
type DialogService struct {
	queries *QueryService
	rules   []rule
}

// rule is one guarded dispatch entry
type rule struct {
	match func(input string, s *models.Session) bool
	run   func(input string, s *models.Session) string
}

// stage is one collect/operate step of a flow: it fires on its context tag,
// advances the carrier to next and returns the reply.
type stage struct {
	context string
	next    string
	run     func(input string, s *models.Session) string
}

// flow is the generic enter → collect/operate → loop-or-exit template each of
// the five conversation threads instantiates.
type flow struct {
	menuToken string
	prompt    func(s *models.Session) string // entry reply, reused on "yes"
	entry     string                         // context the prompt transitions to
	stages    []stage
	loop      string // context of the yes/no question
}

// NewDialogService creates a new DialogService
func NewDialogService(queries *QueryService) *DialogService {
	d := &DialogService{queries: queries}
	d.buildRules()
	return d
}

// Step processes one conversation turn. It never fails: unrecognized input or
// an unknown context tag falls back to the top-level menu.
func (d *DialogService) Step(input string, s *models.Session) string {
	for _, r := range d.rules {
		if r.match(input, s) {
			return r.run(input, s)
		}
	}
	return showMenu(s)
}

// buildRules instantiates the five flows in menu order
func (d *DialogService) buildRules() {
	q := d.queries

	staticPrompt := func(prompt string) func(*models.Session) string {
		return func(*models.Session) string { return prompt }
	}

	flows := []flow{
		{
			menuToken: "1",
			prompt:    staticPrompt(PromptProductName),
			entry:     models.ContextProductAvailability,
			stages: []stage{{
				context: models.ContextProductAvailability,
				next:    models.ContextCheckAnotherProduct,
				run: func(input string, _ *models.Session) string {
					return q.CheckProductAvailability(input) + AskAnotherProduct
				},
			}},
			loop: models.ContextCheckAnotherProduct,
		},
		{
			menuToken: "2",
			prompt:    staticPrompt(PromptProductID),
			entry:     models.ContextTrackOrder,
			stages: []stage{{
				context: models.ContextTrackOrder,
				next:    models.ContextCheckAnotherOrder,
				run: func(input string, _ *models.Session) string {
					return q.TrackOrder(input) + AskAnotherOrder
				},
			}},
			loop: models.ContextCheckAnotherOrder,
		},
		{
			menuToken: "3",
			prompt:    staticPrompt(PromptCity),
			entry:     models.ContextFindNearestStore,
			stages: []stage{{
				context: models.ContextFindNearestStore,
				next:    models.ContextCheckAnotherStore,
				run: func(input string, _ *models.Session) string {
					return q.FindNearestStore(input) + AskAnotherLocation
				},
			}},
			loop: models.ContextCheckAnotherStore,
		},
		{
			menuToken: "4",
			prompt: func(_ *models.Session) string {
				return q.ListCategories() + PromptCategory
			},
			entry: models.ContextSelectCategory,
			stages: []stage{
				{
					// カテゴリ入力をそのままスロットへ保存して価格を尋ねる
					context: models.ContextSelectCategory,
					next:    models.ContextSelectPrice,
					run: func(input string, s *models.Session) string {
						s.Category = input
						return PromptPrice
					},
				},
				{
					context: models.ContextSelectPrice,
					next:    models.ContextCheckAnotherPrice,
					run: func(input string, s *models.Session) string {
						return q.RecommendByPrice(s.Category, input) + AskAnotherPrice
					},
				},
			},
			loop: models.ContextCheckAnotherPrice,
		},
		{
			menuToken: "5",
			prompt:    staticPrompt(PromptSupport),
			entry:     models.ContextCustomerSupport,
			stages: []stage{{
				context: models.ContextCustomerSupport,
				next:    models.ContextCheckAnotherInquiry,
				run: func(input string, _ *models.Session) string {
					return d.handleSupportInput(input) + AskAnotherInquiry
				},
			}},
			loop: models.ContextCheckAnotherInquiry,
		},
	}

	for _, f := range flows {
		d.rules = append(d.rules, d.flowRules(f)...)
	}
}

// flowRules expands one flow template into its ordered guard rules
func (d *DialogService) flowRules(f flow) []rule {
	enter := func(_ string, s *models.Session) string {
		s.Context = f.entry
		return f.prompt(s)
	}

	rules := []rule{{
		match: func(input string, _ *models.Session) bool { return input == f.menuToken },
		run:   enter,
	}}

	for _, st := range f.stages {
		st := st
		rules = append(rules, rule{
			match: func(_ string, s *models.Session) bool { return s.Context == st.context },
			run: func(input string, s *models.Session) string {
				reply := st.run(input, s)
				s.Context = st.next
				return reply
			},
		})
	}

	rules = append(rules, rule{
		match: func(_ string, s *models.Session) bool { return s.Context == f.loop },
		run: func(input string, s *models.Session) string {
			if strings.EqualFold(input, "yes") {
				return enter(input, s)
			}
			return showMenu(s)
		},
	})

	return rules
}

// handleSupportInput splits the raw turn on the FIRST comma into
// (CustomerID, inquiry). A missing separator is a handled validation error,
// not a panic; the flow still advances to the yes/no question either way.
func (d *DialogService) handleSupportInput(input string) string {
	idx := strings.Index(input, ",")
	if idx < 0 {
		return MsgInvalidInquiry
	}
	customerID := input[:idx]
	inquiry := input[idx+1:]
	return d.queries.LogSupportInquiry(customerID, inquiry)
}

// showMenu returns to the top-level menu and clears the context
func showMenu(s *models.Session) string {
	s.Context = models.ContextNone
	return MenuText
}
