package services

import (
	"context"
	"sync"
	"time"

	"github.com/vladimiradmaev/medscan/internal/domain"
	"github.com/vladimiradmaev/medscan/internal/schema"
)

const validCoreJSON = `{
  "report_type": "Blood Test",
  "report_date": "2025-10-01",
  "overall_status": "attention_needed",
  "summary_emoji": "🩸",
  "one_line_summary": "Sugar is a little high.",
  "attention_items": [{
    "parameter": "Glucose (Fasting)",
    "your_value": "132 mg/dL",
    "normal_range": "70-100 mg/dL",
    "status": "high",
    "simple_name": "Blood Sugar Level",
    "urgency": "soon"
  }],
  "good_items": [{
    "parameter": "Hemoglobin",
    "your_value": "13.8 g/dL",
    "normal_range": "13-17 g/dL"
  }]
}`

const validInsightsJSON = `{
  "spoken_summary_script": "Your sugar is slightly high.",
  "risks": [{"condition": "Prediabetes", "risk_level": "moderate"}],
  "organ_map": [
    {"organ": "pancreas", "status": "attention", "findings": ["High fasting glucose"],
     "dietary_advice": {"eat": ["Oats"], "avoid": ["Soda"]}},
    {"organ": "heart", "status": "good"}
  ],
  "medicine_analysis": {"schedule": {"morning": ["Walk 20 minutes"]}},
  "doctor_questions": ["Should I repeat the test?"],
  "next_steps": ["Repeat fasting glucose in 3 months"]
}`

var testDocument = domain.Document{Data: []byte("\x89PNG fake report"), MIMEType: domain.MIMEPNG}

type structuredReply struct {
	text  string
	err   error
	delay time.Duration
}

// fakeStructured answers by schema name and records every request.
type fakeStructured struct {
	mu       sync.Mutex
	replies  map[string]structuredReply
	requests []StructuredRequest
}

func newFakeStructured(core, insights structuredReply) *fakeStructured {
	return &fakeStructured{replies: map[string]structuredReply{
		schema.CoreFactsName:    core,
		schema.DeepInsightsName: insights,
	}}
}

func (f *fakeStructured) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	reply := f.replies[req.Schema.Name]
	f.mu.Unlock()

	if reply.delay > 0 {
		select {
		case <-time.After(reply.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return reply.text, reply.err
}

func (f *fakeStructured) calls() []StructuredRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]StructuredRequest(nil), f.requests...)
}

type chatReply struct {
	text string
	err  error
}

// fakeChat returns scripted replies in order and tracks concurrent calls.
type fakeChat struct {
	mu        sync.Mutex
	replies   []chatReply
	requests  []ChatRequest
	delay     time.Duration
	active    int
	maxActive int
}

func (f *fakeChat) GenerateChat(ctx context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	var reply chatReply
	if len(f.replies) > 0 {
		reply, f.replies = f.replies[0], f.replies[1:]
	} else {
		reply = chatReply{text: "ok"}
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.active--
	f.mu.Unlock()
	return reply.text, reply.err
}
