package domain

import (
	"errors"
	"fmt"
	"strings"
)

// CoreFacts is the result of the "core facts" extraction.
type CoreFacts struct {
	ReportType     string          `json:"report_type"`
	ReportDate     string          `json:"report_date"`
	OverallStatus  OverallStatus   `json:"overall_status"`
	SummaryEmoji   string          `json:"summary_emoji"`
	OneLineSummary string          `json:"one_line_summary"`
	AttentionItems []AttentionItem `json:"attention_items"`
	GoodItems      []GoodItem      `json:"good_items"`
}

// DeepInsights is the result of the "deep insights" extraction.
type DeepInsights struct {
	SpokenSummaryScript string           `json:"spoken_summary_script"`
	Risks               []RiskAssessment `json:"risks"`
	OrganMap            []OrganStatus    `json:"organ_map"`
	MedicinesFound      []Medicine       `json:"medicines_found"`
	MedicineAnalysis    MedicineAnalysis `json:"medicine_analysis"`
	DoctorQuestions     []string         `json:"doctor_questions"`
	HealthTips          []HealthTip      `json:"health_tips"`
	NextSteps           []string         `json:"next_steps"`
}

// Normalize replaces missing collections with empty ones.
func (c *CoreFacts) Normalize() {
	c.AttentionItems = orEmpty(c.AttentionItems)
	c.GoodItems = orEmpty(c.GoodItems)
	for i := range c.AttentionItems {
		c.AttentionItems[i].PossibleCauses = orEmpty(c.AttentionItems[i].PossibleCauses)
		c.AttentionItems[i].WhatToDo = orEmpty(c.AttentionItems[i].WhatToDo)
	}
}

// Validate checks enum membership and that no parameter is both good and out of range.
func (c *CoreFacts) Validate() error {
	var errs []error
	if !oneOf(c.OverallStatus, OverallStatuses) {
		errs = append(errs, fmt.Errorf("overall_status %q not allowed", c.OverallStatus))
	}

	flagged := make(map[string]bool, len(c.AttentionItems))
	for i, item := range c.AttentionItems {
		if !oneOf(item.Status, AttentionStatuses) {
			errs = append(errs, fmt.Errorf("attention_items[%d].status %q not allowed", i, item.Status))
		}
		if !oneOf(item.Urgency, Urgencies) {
			errs = append(errs, fmt.Errorf("attention_items[%d].urgency %q not allowed", i, item.Urgency))
		}
		flagged[ParameterKey(item.Parameter)] = true
	}
	for i, item := range c.GoodItems {
		if flagged[ParameterKey(item.Parameter)] {
			errs = append(errs, fmt.Errorf("good_items[%d] %q is also an attention item", i, item.Parameter))
		}
	}
	return errors.Join(errs...)
}

// Normalize replaces missing collections with empty ones.
func (d *DeepInsights) Normalize() {
	d.Risks = orEmpty(d.Risks)
	for i := range d.Risks {
		r := &d.Risks[i]
		r.ContributingFactors = orEmpty(r.ContributingFactors)
		r.PreventionPlan.Immediate = orEmpty(r.PreventionPlan.Immediate)
		r.PreventionPlan.Lifestyle = orEmpty(r.PreventionPlan.Lifestyle)
	}
	d.OrganMap = orEmpty(d.OrganMap)
	for i := range d.OrganMap {
		o := &d.OrganMap[i]
		o.Findings = orEmpty(o.Findings)
		if o.DietaryAdvice != nil {
			o.DietaryAdvice.Eat = orEmpty(o.DietaryAdvice.Eat)
			o.DietaryAdvice.Avoid = orEmpty(o.DietaryAdvice.Avoid)
		}
	}
	d.MedicinesFound = orEmpty(d.MedicinesFound)

	ma := &d.MedicineAnalysis
	ma.Interactions = orEmpty(ma.Interactions)
	ma.Supplements = orEmpty(ma.Supplements)
	ma.Schedule.Morning = orEmpty(ma.Schedule.Morning)
	ma.Schedule.Afternoon = orEmpty(ma.Schedule.Afternoon)
	ma.Schedule.Evening = orEmpty(ma.Schedule.Evening)
	ma.Schedule.Bedtime = orEmpty(ma.Schedule.Bedtime)

	d.DoctorQuestions = orEmpty(d.DoctorQuestions)
	d.HealthTips = orEmpty(d.HealthTips)
	d.NextSteps = orEmpty(d.NextSteps)
}

// Validate checks enum membership and organ uniqueness.
func (d *DeepInsights) Validate() error {
	var errs []error
	for i, r := range d.Risks {
		if !oneOf(r.RiskLevel, RiskLevels) {
			errs = append(errs, fmt.Errorf("risks[%d].risk_level %q not allowed", i, r.RiskLevel))
		}
	}
	for i, in := range d.MedicineAnalysis.Interactions {
		if !oneOf(in.Severity, Severities) {
			errs = append(errs, fmt.Errorf("medicine_analysis.interactions[%d].severity %q not allowed", i, in.Severity))
		}
	}
	seen := make(map[Organ]bool, len(d.OrganMap))
	for i, o := range d.OrganMap {
		if !oneOf(o.Organ, Organs) {
			errs = append(errs, fmt.Errorf("organ_map[%d].organ %q not allowed", i, o.Organ))
		}
		if !oneOf(o.Status, OrganHealths) {
			errs = append(errs, fmt.Errorf("organ_map[%d].status %q not allowed", i, o.Status))
		}
		if seen[o.Organ] {
			errs = append(errs, fmt.Errorf("organ_map[%d] duplicates organ %q", i, o.Organ))
		}
		seen[o.Organ] = true
	}
	return errors.Join(errs...)
}

// MergeAnalysis combines both halves into one record. The halves own disjoint
// fields, so every record field is assigned from exactly one of them.
func MergeAnalysis(core CoreFacts, insights DeepInsights) AnalysisRecord {
	return AnalysisRecord{
		ReportType:     core.ReportType,
		ReportDate:     core.ReportDate,
		OverallStatus:  core.OverallStatus,
		SummaryEmoji:   core.SummaryEmoji,
		OneLineSummary: core.OneLineSummary,
		AttentionItems: core.AttentionItems,
		GoodItems:      core.GoodItems,

		SpokenSummaryScript: insights.SpokenSummaryScript,
		Risks:               insights.Risks,
		OrganMap:            insights.OrganMap,
		MedicinesFound:      insights.MedicinesFound,
		MedicineAnalysis:    insights.MedicineAnalysis,
		DoctorQuestions:     insights.DoctorQuestions,
		HealthTips:          insights.HealthTips,
		NextSteps:           insights.NextSteps,
	}
}

// ParameterKey is the identity used to compare parameters across lists.
func ParameterKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
