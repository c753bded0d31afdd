package domain

// OverallStatus is the headline verdict of a report.
type OverallStatus string

const (
	OverallGood            OverallStatus = "good"
	OverallAttentionNeeded OverallStatus = "attention_needed"
	OverallConsultDoctor   OverallStatus = "consult_doctor"
)

// AttentionStatus describes how far an out-of-range parameter deviates.
type AttentionStatus string

const (
	StatusSlightlyHigh AttentionStatus = "slightly_high"
	StatusHigh         AttentionStatus = "high"
	StatusSlightlyLow  AttentionStatus = "slightly_low"
	StatusLow          AttentionStatus = "low"
	StatusAbnormal     AttentionStatus = "abnormal"
	StatusCritical     AttentionStatus = "critical"
)

// Urgency tells how soon an attention item should be acted on.
type Urgency string

const (
	UrgencyMonitor Urgency = "monitor"
	UrgencySoon    Urgency = "soon"
	UrgencyUrgent  Urgency = "urgent"
)

// RiskLevel grades a risk assessment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Severity grades a medicine interaction.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Organ is one of the anatomical organs the body map knows about.
type Organ string

const (
	OrganBrain     Organ = "brain"
	OrganHeart     Organ = "heart"
	OrganLungs     Organ = "lungs"
	OrganLiver     Organ = "liver"
	OrganKidneys   Organ = "kidneys"
	OrganPancreas  Organ = "pancreas"
	OrganThyroid   Organ = "thyroid"
	OrganStomach   Organ = "stomach"
	OrganIntestine Organ = "intestine"
)

// OrganHealth is the status of a single organ.
type OrganHealth string

const (
	OrganGood      OrganHealth = "good"
	OrganMonitor   OrganHealth = "monitor"
	OrganAttention OrganHealth = "attention"
	OrganCritical  OrganHealth = "critical"
)

// Closed vocabularies, in the order they are presented to the inference service.
var (
	OverallStatuses   = []OverallStatus{OverallGood, OverallAttentionNeeded, OverallConsultDoctor}
	AttentionStatuses = []AttentionStatus{StatusSlightlyHigh, StatusHigh, StatusSlightlyLow, StatusLow, StatusAbnormal, StatusCritical}
	Urgencies         = []Urgency{UrgencyMonitor, UrgencySoon, UrgencyUrgent}
	RiskLevels        = []RiskLevel{RiskLow, RiskModerate, RiskHigh}
	Severities        = []Severity{SeverityMild, SeverityModerate, SeveritySevere}
	Organs            = []Organ{OrganBrain, OrganHeart, OrganLungs, OrganLiver, OrganKidneys, OrganPancreas, OrganThyroid, OrganStomach, OrganIntestine}
	OrganHealths      = []OrganHealth{OrganGood, OrganMonitor, OrganAttention, OrganCritical}
)

// AttentionItem is an out-of-range measured parameter.
type AttentionItem struct {
	Parameter      string          `json:"parameter"`
	YourValue      string          `json:"your_value"`
	NormalRange    string          `json:"normal_range"`
	Status         AttentionStatus `json:"status"`
	SimpleName     string          `json:"simple_name"`
	Analogy        string          `json:"analogy"`
	Explanation    string          `json:"explanation"`
	WhyItMatters   string          `json:"why_it_matters"`
	PossibleCauses []string        `json:"possible_causes"`
	WhatToDo       []string        `json:"what_to_do"`
	Urgency        Urgency         `json:"urgency"`
}

// GoodItem is an in-range measured parameter.
type GoodItem struct {
	Parameter         string `json:"parameter"`
	YourValue         string `json:"your_value"`
	NormalRange       string `json:"normal_range"`
	SimpleExplanation string `json:"simple_explanation"`
	Analogy           string `json:"analogy"`
}

type HealthTip struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Tip   string `json:"tip"`
}

type PreventionPlan struct {
	Immediate []string `json:"immediate"`
	Lifestyle []string `json:"lifestyle"`
}

type RiskAssessment struct {
	Condition           string         `json:"condition"`
	RiskLevel           RiskLevel      `json:"risk_level"`
	Probability         string         `json:"probability"`
	ContributingFactors []string       `json:"contributing_factors"`
	PreventionPlan      PreventionPlan `json:"prevention_plan"`
}

type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Timing       string `json:"timing"`
	Purpose      string `json:"purpose"`
	Instructions string `json:"instructions"`
}

type Interaction struct {
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Schedule is the four-slot daily plan. Slots may be empty.
type Schedule struct {
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Evening   []string `json:"evening"`
	Bedtime   []string `json:"bedtime"`
}

// IsEmpty reports whether no slot carries an action.
func (s Schedule) IsEmpty() bool {
	return len(s.Morning)+len(s.Afternoon)+len(s.Evening)+len(s.Bedtime) == 0
}

type Supplement struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type MedicineAnalysis struct {
	Interactions []Interaction `json:"interactions"`
	Schedule     Schedule      `json:"schedule"`
	Supplements  []Supplement  `json:"supplements"`
}

type DietaryAdvice struct {
	Eat   []string `json:"eat"`
	Avoid []string `json:"avoid"`
}

type OrganStatus struct {
	Organ         Organ          `json:"organ"`
	Status        OrganHealth    `json:"status"`
	Explanation   string         `json:"explanation"`
	Findings      []string       `json:"findings"`
	DietaryAdvice *DietaryAdvice `json:"dietary_advice,omitempty"`
}

// AnalysisRecord is the validated, merged result of analyzing one report.
// It is built once by MergeAnalysis and never modified afterwards.
type AnalysisRecord struct {
	ReportType          string           `json:"report_type"`
	ReportDate          string           `json:"report_date,omitempty"`
	OverallStatus       OverallStatus    `json:"overall_status"`
	SummaryEmoji        string           `json:"summary_emoji"`
	OneLineSummary      string           `json:"one_line_summary"`
	SpokenSummaryScript string           `json:"spoken_summary_script"`
	AttentionItems      []AttentionItem  `json:"attention_items"`
	GoodItems           []GoodItem       `json:"good_items"`
	DoctorQuestions     []string         `json:"doctor_questions"`
	HealthTips          []HealthTip      `json:"health_tips"`
	Risks               []RiskAssessment `json:"risks"`
	MedicinesFound      []Medicine       `json:"medicines_found"`
	MedicineAnalysis    MedicineAnalysis `json:"medicine_analysis"`
	OrganMap            []OrganStatus    `json:"organ_map"`
	NextSteps           []string         `json:"next_steps"`
}
