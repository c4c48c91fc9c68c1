package testsupport

import (
	"testing"
)

// ScriptedPrompter replays predetermined answers to confirmation and
// selection questions, recording every question asked.
type ScriptedPrompter struct {
	t         testing.TB
	confirms  []bool
	selects   []SelectAnswer
	Questions []string
}

// SelectAnswer is one scripted response to a Select call.
type SelectAnswer struct {
	Choice   int
	Canceled bool
}

// NewPrompter builds a ScriptedPrompter bound to the test for failure
// reporting.
func NewPrompter(t testing.TB) *ScriptedPrompter {
	return &ScriptedPrompter{t: t}
}

// WillConfirm queues answers for upcoming Confirm calls.
func (p *ScriptedPrompter) WillConfirm(answers ...bool) *ScriptedPrompter {
	p.confirms = append(p.confirms, answers...)
	return p
}

// WillSelect queues an index answer for an upcoming Select call.
func (p *ScriptedPrompter) WillSelect(choice int) *ScriptedPrompter {
	p.selects = append(p.selects, SelectAnswer{Choice: choice})
	return p
}

// WillCancel queues a cancellation for an upcoming Select call.
func (p *ScriptedPrompter) WillCancel() *ScriptedPrompter {
	p.selects = append(p.selects, SelectAnswer{Canceled: true})
	return p
}

func (p *ScriptedPrompter) Confirm(question string, def bool) (bool, error) {
	p.Questions = append(p.Questions, question)
	if len(p.confirms) == 0 {
		p.t.Fatalf("unexpected Confirm(%q)", question)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *ScriptedPrompter) Select(question string, allowed []int) (int, bool, error) {
	p.Questions = append(p.Questions, question)
	if len(p.selects) == 0 {
		p.t.Fatalf("unexpected Select(%q)", question)
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	return answer.Choice, answer.Canceled, nil
}
