// Package schema holds the response schemas sent with every structured
// extraction request. Enumerations are built from the domain vocabularies
// so the schema and the validator can never disagree.
package schema

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/vladimiradmaev/medscan/internal/domain"
)

// Descriptor names a response schema.
type Descriptor struct {
	Name   string
	Schema *genai.Schema
}

const (
	CoreFactsName    = "core_facts"
	DeepInsightsName = "deep_insights"
)

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func strList(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Description: description, Items: &genai.Schema{Type: genai.TypeString}}
}

func enum[T ~string](description string, values []T) *genai.Schema {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return &genai.Schema{Type: genai.TypeString, Description: description, Enum: out}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func list(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

// CoreFacts describes the report identification and parameter lists.
func CoreFacts() Descriptor {
	attention := object(map[string]*genai.Schema{
		"parameter":       str("Parameter name as printed on the report"),
		"your_value":      str("Measured value including unit"),
		"normal_range":    str("Reference range"),
		"status":          enum("Deviation from the reference range", domain.AttentionStatuses),
		"simple_name":     str("Plain-language name of the parameter"),
		"analogy":         str("Everyday analogy"),
		"explanation":     str("What the value means"),
		"why_it_matters":  str("Why the deviation matters"),
		"possible_causes": strList("Likely causes"),
		"what_to_do":      strList("Concrete actions"),
		"urgency":         enum("How soon to act", domain.Urgencies),
	}, "parameter", "your_value", "status", "simple_name", "urgency")

	good := object(map[string]*genai.Schema{
		"parameter":          str("Parameter name as printed on the report"),
		"your_value":         str("Measured value including unit"),
		"normal_range":       str("Reference range"),
		"simple_explanation": str("What the parameter measures"),
		"analogy":            str("Everyday analogy"),
	}, "parameter", "your_value")

	return Descriptor{
		Name: CoreFactsName,
		Schema: object(map[string]*genai.Schema{
			"report_type":      str("Kind of report, e.g. Complete Blood Count"),
			"report_date":      str("Sample or report date in YYYY-MM-DD, empty if not printed"),
			"overall_status":   enum("Headline verdict", domain.OverallStatuses),
			"summary_emoji":    str("Single emoji summarizing the result"),
			"one_line_summary": str("One sentence summary"),
			"attention_items":  list(attention),
			"good_items":       list(good),
		}, "report_type", "overall_status", "attention_items", "good_items"),
	}
}

// DeepInsights describes risks, organ map, medicines and guidance.
func DeepInsights() Descriptor {
	risk := object(map[string]*genai.Schema{
		"condition":            str("Condition the patient is at risk of"),
		"risk_level":           enum("Risk grade", domain.RiskLevels),
		"probability":          str("Estimated likelihood in words"),
		"contributing_factors": strList("Findings that raise the risk"),
		"prevention_plan": object(map[string]*genai.Schema{
			"immediate": strList("Actions for the next days"),
			"lifestyle": strList("Long-term habits"),
		}),
	}, "condition", "risk_level")

	organ := object(map[string]*genai.Schema{
		"organ":       enum("Organ", domain.Organs),
		"status":      enum("Organ health", domain.OrganHealths),
		"explanation": str("Why the organ has this status"),
		"findings":    strList("Report findings linked to the organ"),
		"dietary_advice": object(map[string]*genai.Schema{
			"eat":   strList("Foods that help"),
			"avoid": strList("Foods to limit"),
		}),
	}, "organ", "status")

	medicine := object(map[string]*genai.Schema{
		"name":         str("Medicine name"),
		"dosage":       str("Dose"),
		"timing":       str("When it is taken"),
		"purpose":      str("What it treats"),
		"instructions": str("How to take it"),
	}, "name")

	analysis := object(map[string]*genai.Schema{
		"interactions": list(object(map[string]*genai.Schema{
			"description": str("Interaction between medicines or with food"),
			"severity":    enum("Interaction severity", domain.Severities),
		}, "description", "severity")),
		"schedule": object(map[string]*genai.Schema{
			"morning":   strList("Morning actions"),
			"afternoon": strList("Afternoon actions"),
			"evening":   strList("Evening actions"),
			"bedtime":   strList("Bedtime actions"),
		}),
		"supplements": list(object(map[string]*genai.Schema{
			"name":   str("Supplement"),
			"reason": str("Why it may help"),
		}, "name")),
	})

	tip := object(map[string]*genai.Schema{
		"icon":  str("Single emoji"),
		"title": str("Short title"),
		"tip":   str("The advice"),
	}, "title", "tip")

	return Descriptor{
		Name: DeepInsightsName,
		Schema: object(map[string]*genai.Schema{
			"spoken_summary_script": str("Short summary written to be read aloud"),
			"risks":                 list(risk),
			"organ_map":             list(organ),
			"medicines_found":       list(medicine),
			"medicine_analysis":     analysis,
			"doctor_questions":      strList("Questions to ask the doctor"),
			"health_tips":           list(tip),
			"next_steps":            strList("Recommended next steps"),
		}, "spoken_summary_script", "risks", "organ_map", "doctor_questions", "next_steps"),
	}
}
