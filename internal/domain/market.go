package domain

import (
	"fmt"
	"strings"
)

// Level grades a market risk.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// ParseLevel accepts Low/Medium/High case-insensitively. Empty means Medium.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return LevelMedium, nil
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	}
	return "", &ValidationError{Field: "level", Message: fmt.Sprintf("must be Low, Medium or High, got %q", s)}
}

type CustomerSegment struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	JTBD             string `json:"jtbd"`
	BuyingTriggers   string `json:"buyingTriggers"`
	ProcurementCycle string `json:"procurementCycle"`
	Budget           string `json:"budget"`
	Quotes           string `json:"quotes"`
}

type Competitor struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	FoundingYear     string `json:"foundingYear"`
	HQ               string `json:"hq"`
	FundingRevenue   string `json:"fundingRevenue"`
	CoreOffer        string `json:"coreOffer"`
	PricingModel     string `json:"pricingModel"`
	Differentiators  string `json:"differentiators"`
	GTMMotion        string `json:"gtmMotion"`
	NotableCustomers string `json:"notableCustomers"`
}

type Risk struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Likelihood  Level  `json:"likelihood"`
	Impact      Level  `json:"impact"`
}

type Experiment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CostRange   string `json:"costRange"`
}

// MarketResearch is the market sizing and discovery worksheet.
type MarketResearch struct {
	MarketDefinition     string            `json:"marketDefinition"`
	TAMCurrent           string            `json:"tamCurrent"`
	SAMCurrent           string            `json:"samCurrent"`
	SOMCurrent           string            `json:"somCurrent"`
	TAMProjection        string            `json:"tamProjection"`
	SAMProjection        string            `json:"samProjection"`
	SOMProjection        string            `json:"somProjection"`
	TAMAssumptions       string            `json:"tamAssumptions"`
	CustomerSegments     []CustomerSegment `json:"customerSegments"`
	Competitors          []Competitor      `json:"competitors"`
	PricingInfo          string            `json:"pricingInfo"`
	DistributionChannels string            `json:"distributionChannels"`
	RegulatoryInfo       string            `json:"regulatoryInfo"`
	TrendsInfo           string            `json:"trendsInfo"`
	ProcurementInfo      string            `json:"procurementInfo"`
	Risks                []Risk            `json:"risks"`
	Experiments          []Experiment      `json:"experiments"`
	EntryPlan            string            `json:"entryPlan"`
}

// NewMarketResearch returns an empty worksheet with non-nil lists.
func NewMarketResearch() MarketResearch {
	return MarketResearch{
		CustomerSegments: []CustomerSegment{},
		Competitors:      []Competitor{},
		Risks:            []Risk{},
		Experiments:      []Experiment{},
	}
}

// MarketField is one free-text field of the worksheet.
type MarketField struct {
	Key   string
	Label string
}

// MarketFields lists the free-text fields in display order.
var MarketFields = []MarketField{
	{"marketDefinition", "Market Definition"},
	{"tamCurrent", "TAM (Current)"},
	{"samCurrent", "SAM (Current)"},
	{"somCurrent", "SOM (Current)"},
	{"tamProjection", "TAM (5-Year Projection)"},
	{"samProjection", "SAM (5-Year Projection)"},
	{"somProjection", "SOM (5-Year Projection)"},
	{"tamAssumptions", "Sizing Assumptions"},
	{"pricingInfo", "Pricing"},
	{"distributionChannels", "Distribution Channels"},
	{"regulatoryInfo", "Regulatory Environment"},
	{"trendsInfo", "Trends"},
	{"procurementInfo", "Procurement"},
	{"entryPlan", "Market Entry Plan"},
}

func (m *MarketResearch) field(key string) *string {
	switch key {
	case "marketDefinition":
		return &m.MarketDefinition
	case "tamCurrent":
		return &m.TAMCurrent
	case "samCurrent":
		return &m.SAMCurrent
	case "somCurrent":
		return &m.SOMCurrent
	case "tamProjection":
		return &m.TAMProjection
	case "samProjection":
		return &m.SAMProjection
	case "somProjection":
		return &m.SOMProjection
	case "tamAssumptions":
		return &m.TAMAssumptions
	case "pricingInfo":
		return &m.PricingInfo
	case "distributionChannels":
		return &m.DistributionChannels
	case "regulatoryInfo":
		return &m.RegulatoryInfo
	case "trendsInfo":
		return &m.TrendsInfo
	case "procurementInfo":
		return &m.ProcurementInfo
	case "entryPlan":
		return &m.EntryPlan
	}
	return nil
}

func (m *MarketResearch) Get(key string) (string, bool) {
	if p := m.field(key); p != nil {
		return *p, true
	}
	return "", false
}

func (m *MarketResearch) Set(key, value string) error {
	p := m.field(key)
	if p == nil {
		return &ValidationError{Field: key, Message: "unknown market research field"}
	}
	*p = value
	return nil
}

// MarketList names one of the repeated-entity lists.
type MarketList string

const (
	ListSegments    MarketList = "segments"
	ListCompetitors MarketList = "competitors"
	ListRisks       MarketList = "risks"
	ListExperiments MarketList = "experiments"
)

func (m *MarketResearch) AddSegment(s CustomerSegment) (CustomerSegment, error) {
	if strings.TrimSpace(s.Name) == "" {
		return CustomerSegment{}, required("name", "a segment name")
	}
	s.ID = NewID("segment")
	m.CustomerSegments = append(m.CustomerSegments, s)
	return s, nil
}

func (m *MarketResearch) AddCompetitor(c Competitor) (Competitor, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Competitor{}, required("name", "a competitor name")
	}
	c.ID = NewID("competitor")
	m.Competitors = append(m.Competitors, c)
	return c, nil
}

func (m *MarketResearch) AddRisk(r Risk) (Risk, error) {
	if strings.TrimSpace(r.Description) == "" {
		return Risk{}, required("description", "a risk description")
	}
	var err error
	if r.Likelihood, err = ParseLevel(string(r.Likelihood)); err != nil {
		return Risk{}, err
	}
	if r.Impact, err = ParseLevel(string(r.Impact)); err != nil {
		return Risk{}, err
	}
	r.ID = NewID("risk")
	m.Risks = append(m.Risks, r)
	return r, nil
}

func (m *MarketResearch) AddExperiment(e Experiment) (Experiment, error) {
	if strings.TrimSpace(e.Name) == "" {
		return Experiment{}, required("name", "an experiment name")
	}
	e.ID = NewID("experiment")
	m.Experiments = append(m.Experiments, e)
	return e, nil
}

// Remove deletes an entry from one of the lists.
func (m *MarketResearch) Remove(list MarketList, id string) error {
	var ok bool
	switch list {
	case ListSegments:
		m.CustomerSegments, ok = removeByID(m.CustomerSegments, id, func(s CustomerSegment) string { return s.ID })
	case ListCompetitors:
		m.Competitors, ok = removeByID(m.Competitors, id, func(c Competitor) string { return c.ID })
	case ListRisks:
		m.Risks, ok = removeByID(m.Risks, id, func(r Risk) string { return r.ID })
	case ListExperiments:
		m.Experiments, ok = removeByID(m.Experiments, id, func(e Experiment) string { return e.ID })
	default:
		return &ValidationError{Field: "list", Message: fmt.Sprintf("unknown list %q", list)}
	}
	if !ok {
		return ErrItemNotFound
	}
	return nil
}

// Backfill replaces nil lists from older saves with empty ones.
func (m *MarketResearch) Backfill() {
	if m.CustomerSegments == nil {
		m.CustomerSegments = []CustomerSegment{}
	}
	if m.Competitors == nil {
		m.Competitors = []Competitor{}
	}
	if m.Risks == nil {
		m.Risks = []Risk{}
	}
	if m.Experiments == nil {
		m.Experiments = []Experiment{}
	}
	for i := range m.Risks {
		if m.Risks[i].Likelihood == "" {
			m.Risks[i].Likelihood = LevelMedium
		}
		if m.Risks[i].Impact == "" {
			m.Risks[i].Impact = LevelMedium
		}
	}
}
