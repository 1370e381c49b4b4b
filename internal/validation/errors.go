package validation

import (
	"sort"
	"strings"

	"github.com/julianstephens/hae/internal/constants"
)

// Errors maps a field name, or a weekday name for schedule problems, to a message.
// The zero value is not usable for writes; use make or NewErrors.
type Errors map[string]string

func NewErrors() Errors {
	return Errors{}
}

// fieldOrder is the order fields appear in the form.
var fieldOrder = []string{
	"projectTitle",
	"projectType",
	"course",
	"projectDescription",
	"modality",
	"dimensao",
	"studentRAs",
	"dayOfWeek",
	"weeklySchedule",
	"startDate",
	"endDate",
	"weeklyHours",
	"tccRole",
	"tccStudentCount",
	"tccStudentNames",
	"tccApprovedStudents",
	"tccProjectInfo",
	"estagioStudentInfo",
	"estagioApprovedStudents",
	"apoioType",
	"apoioGeralDescription",
	"apoioApprovedStudents",
	"apoioCertificateStudents",
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Clear(field string) {
	delete(e, field)
}

// Merge copies every message of other that e does not already hold.
func (e Errors) Merge(other Errors) {
	for f, m := range other {
		e.Add(f, m)
	}
}

// fieldRank orders fields as they appear in the form, with weekday entries
// right after the schedule they belong to.
var fieldRank = func() map[string]int {
	m := make(map[string]int, len(fieldOrder)+len(constants.Weekdays))
	for _, f := range fieldOrder {
		m[f] = len(m)
		if f == "weeklySchedule" {
			for _, d := range constants.Weekdays {
				m[string(d)] = len(m)
			}
		}
	}
	return m
}()

// Fields returns the fields with errors in form order. Unknown fields sort last.
func (e Errors) Fields() []string {
	rank := func(f string) int {
		if r, ok := fieldRank[f]; ok {
			return r
		}
		return len(fieldRank)
	}

	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		ri, rj := rank(fields[i]), rank(fields[j])
		if ri != rj {
			return ri < rj
		}
		return fields[i] < fields[j]
	})
	return fields
}

// First returns the message of the first field in form order.
func (e Errors) First() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return ""
	}
	return e[fields[0]]
}

func (e Errors) Error() string {
	var b strings.Builder
	for i, f := range e.Fields() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e[f])
	}
	return b.String()
}

// Err returns nil when there are no errors, so callers can use the usual err != nil check.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
