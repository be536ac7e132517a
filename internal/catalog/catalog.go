// Package catalog holds the static pattern tables consumed by the analyzer:
// domain keyword sets, breakpoint prefixes, interactive-element signatures and
// utility-class taxonomies.
//
// A Catalog is treated as immutable once handed to the analyzer. Overrides
// produce a new Catalog through the With* methods.
package catalog

import (
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
)

// CategoryKeywords pairs a domain category with the keywords that select it
type CategoryKeywords struct {
	Category domain.DomainCategory `json:"category" mapstructure:"category" yaml:"category"`
	Keywords []string              `json:"keywords" mapstructure:"keywords" yaml:"keywords"`
}

// Catalog is the full set of pattern tables
type Catalog struct {
	// Categories is checked in order; the first category with a keyword hit wins
	Categories []CategoryKeywords

	// DomainKeywords decide whether a single line touches financial content
	DomainKeywords []string

	// BreakpointPrefixes are the responsive variant prefixes, smallest first
	BreakpointPrefixes []string

	// InteractiveSignatures mark a line as containing an interactive element
	InteractiveSignatures []string

	// FinancialActions mark an interactive element as a financial action
	FinancialActions []string

	// NavigationSignatures mark a line as navigation markup
	NavigationSignatures []string
	MenuActionSignatures []string
	HamburgerSignatures  []string
	DesktopHideClasses   []string
	TightSpacingClasses  []string
	AccessibleLabelAttrs []string

	// FlexGridPatterns are anchored regular expressions matched against single class tokens
	FlexGridPatterns []string

	// Domain UX signal tables
	ListRenderSignals     []string
	VirtualizationSignals []string
	GestureSignals        []string
	LoadingSignals        []string
	ChartLibrarySignals   []string
	ChartTouchSignals     []string
	NumericFieldSignals   []string
	InputModeSignals      []string
	CurrencyGlyphs        []string
	IntlFormatSignals     []string

	// RoleRemediations maps an element role to its context-specific fix
	RoleRemediations map[domain.ElementRole]string
}

// Default returns a fresh copy of the built-in catalog
func Default() *Catalog {
	return &Catalog{
		Categories: []CategoryKeywords{
			{Category: domain.CategoryTransactionList, Keywords: []string{"transaction", "statement", "history", "ledger", "activity"}},
			{Category: domain.CategoryDashboardCard, Keywords: []string{"dashboard", "overview", "balancecard", "accountcard", "summarycard", "widget"}},
			{Category: domain.CategoryBudgetChart, Keywords: []string{"budget", "chart", "graph", "spending", "analytics"}},
			{Category: domain.CategoryForm, Keywords: []string{"form", "payment", "transfer", "deposit", "withdraw", "checkout"}},
			{Category: domain.CategoryNavigation, Keywords: []string{"navbar", "navigation", "sidebar", "tabbar", "menu", "breadcrumb"}},
		},
		DomainKeywords: []string{
			"account", "amount", "balance", "bank", "budget", "card", "chart", "currency",
			"deposit", "expense", "income", "invest", "ledger", "menu", "nav", "pay",
			"portfolio", "price", "spending", "statement", "total", "transaction",
			"transfer", "wallet", "withdraw",
		},
		BreakpointPrefixes: []string{"sm:", "md:", "lg:", "xl:", "2xl:"},
		InteractiveSignatures: []string{
			"<button", "<a ", "<input", "<select", "<textarea",
			"onclick=", "onpress=", "ontouchstart=", "@click", "on:click",
			"cursor-pointer", `role="button"`, "tabindex=",
		},
		FinancialActions: []string{
			"pay", "transfer", "deposit", "withdraw", "send", "buy", "sell",
			"submit", "confirm", "amount", "checkout",
		},
		NavigationSignatures: []string{"<nav", "navbar", "navigation", "menu", "tabbar", "sidebar"},
		MenuActionSignatures: []string{"<button", `role="button"`},
		HamburgerSignatures:  []string{"hamburger", "menu-toggle", "menu-button", "menutoggle", "menuicon", "☰"},
		DesktopHideClasses:   []string{"md:hidden", "lg:hidden", "xl:hidden"},
		TightSpacingClasses:  []string{"gap-0", "gap-0.5", "gap-1", "space-x-0", "space-x-1", "space-y-0", "space-y-1", "p-0", "p-0.5", "p-1"},
		AccessibleLabelAttrs: []string{"aria-label", "aria-labelledby"},
		FlexGridPatterns: []string{
			`^(?:inline-)?flex$`,
			`^(?:inline-)?grid$`,
			`^flex-(?:col|row|wrap|nowrap)(?:-reverse)?$`,
			`^(?:items|justify|content|self|place-items|place-content)-(?:start|end|center|between|around|evenly|stretch|baseline)$`,
			`^gap(?:-[xy])?-[\w.\[\]]+$`,
			`^(?:col|row)-span-\w+$`,
		},
		ListRenderSignals:     []string{".map(", "<flatlist", "v-for=", "{#each", "<ul", "<table"},
		VirtualizationSignals: []string{"react-window", "react-virtualized", "fixedsizelist", "variablesizelist", "virtuallist", "usevirtualizer", "virtuoso", "<flatlist", "recyclerlistview"},
		GestureSignals:        []string{"swipe", "ontouchstart", "ontouchmove", "gesture", "usedrag", "panresponder"},
		LoadingSignals:        []string{"skeleton", "isloading", "loading", "spinner", "<suspense", "shimmer", "placeholder"},
		ChartLibrarySignals:   []string{"recharts", "chart.js", "react-chartjs", "victory", "apexcharts", "@nivo", "echarts", "d3", "<linechart", "<barchart", "<piechart", "<areachart"},
		ChartTouchSignals:     []string{"ontouchstart", "ontouchmove", "touch-action", "touchaction", "pinch", "usegesture", "gesture", "onpress", `trigger="click"`},
		NumericFieldSignals:   []string{"amount", "price", `type="number"`, "quantity", "cardnumber", "card number", "routing", "accountnumber", "account number", "cvv"},
		InputModeSignals:      []string{"inputmode=", `type="tel"`},
		CurrencyGlyphs:        []string{"€", "£", "¥", "₹", "₩"},
		IntlFormatSignals:     []string{"intl.numberformat", "tolocalestring", "formatcurrency", "useintl", "<formattednumber", "currency:", "currencydisplay"},
		RoleRemediations: map[domain.ElementRole]string{
			domain.RoleButton:       "Financial action buttons need a 44x44px minimum hit area; add min-h-[44px] min-w-[44px] and keep at least 8px between adjacent actions",
			domain.RoleFormControl:  "Amount and account inputs need a 44px minimum height; use h-11 or min-h-[44px] with text-base to avoid zoom on focus",
			domain.RoleNavItem:      "Navigation items between account views need 44px tap rows; use py-3 with min-h-[44px] on each item",
			domain.RoleChartElement: "Chart segments are too small to tap reliably; enlarge hit areas or expose a tappable legend and tooltip",
			domain.RoleLink:         "Transaction detail links need a full-row tap target; make the whole row the link with min-h-[44px]",
		},
	}
}

// Clone returns a deep copy of the catalog
func (c *Catalog) Clone() *Catalog {
	out := *c
	out.Categories = make([]CategoryKeywords, len(c.Categories))
	for i, ck := range c.Categories {
		out.Categories[i] = CategoryKeywords{Category: ck.Category, Keywords: cloneStrings(ck.Keywords)}
	}
	out.DomainKeywords = cloneStrings(c.DomainKeywords)
	out.BreakpointPrefixes = cloneStrings(c.BreakpointPrefixes)
	out.InteractiveSignatures = cloneStrings(c.InteractiveSignatures)
	out.FinancialActions = cloneStrings(c.FinancialActions)
	out.NavigationSignatures = cloneStrings(c.NavigationSignatures)
	out.MenuActionSignatures = cloneStrings(c.MenuActionSignatures)
	out.HamburgerSignatures = cloneStrings(c.HamburgerSignatures)
	out.DesktopHideClasses = cloneStrings(c.DesktopHideClasses)
	out.TightSpacingClasses = cloneStrings(c.TightSpacingClasses)
	out.AccessibleLabelAttrs = cloneStrings(c.AccessibleLabelAttrs)
	out.FlexGridPatterns = cloneStrings(c.FlexGridPatterns)
	out.ListRenderSignals = cloneStrings(c.ListRenderSignals)
	out.VirtualizationSignals = cloneStrings(c.VirtualizationSignals)
	out.GestureSignals = cloneStrings(c.GestureSignals)
	out.LoadingSignals = cloneStrings(c.LoadingSignals)
	out.ChartLibrarySignals = cloneStrings(c.ChartLibrarySignals)
	out.ChartTouchSignals = cloneStrings(c.ChartTouchSignals)
	out.NumericFieldSignals = cloneStrings(c.NumericFieldSignals)
	out.InputModeSignals = cloneStrings(c.InputModeSignals)
	out.CurrencyGlyphs = cloneStrings(c.CurrencyGlyphs)
	out.IntlFormatSignals = cloneStrings(c.IntlFormatSignals)
	out.RoleRemediations = make(map[domain.ElementRole]string, len(c.RoleRemediations))
	for k, v := range c.RoleRemediations {
		out.RoleRemediations[k] = v
	}
	return &out
}

// WithCategories returns a copy using the given ordered category table
func (c *Catalog) WithCategories(categories []CategoryKeywords) *Catalog {
	out := c.Clone()
	out.Categories = make([]CategoryKeywords, 0, len(categories))
	for _, ck := range categories {
		out.Categories = append(out.Categories, CategoryKeywords{Category: ck.Category, Keywords: lowerAll(ck.Keywords)})
	}
	return out
}

// WithDomainKeywords returns a copy using the given line-level domain keywords
func (c *Catalog) WithDomainKeywords(keywords []string) *Catalog {
	out := c.Clone()
	out.DomainKeywords = lowerAll(keywords)
	return out
}

// WithAdditionalDomainKeywords returns a copy with extra domain keywords appended
func (c *Catalog) WithAdditionalDomainKeywords(keywords []string) *Catalog {
	out := c.Clone()
	out.DomainKeywords = append(out.DomainKeywords, lowerAll(keywords)...)
	return out
}

// MatchesDomain reports whether the lower-cased text contains any domain keyword
func (c *Catalog) MatchesDomain(lower string) bool {
	return ContainsAny(lower, c.DomainKeywords)
}

// ContainsAny reports whether s contains any of the substrings
func ContainsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// StripBreakpoint removes a leading breakpoint prefix from a class token and
// reports whether one was present
func (c *Catalog) StripBreakpoint(token string) (string, bool) {
	for _, prefix := range c.BreakpointPrefixes {
		if strings.HasPrefix(token, prefix) {
			return strings.TrimPrefix(token, prefix), true
		}
	}
	return token, false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
