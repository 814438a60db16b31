package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/NVIDIA/cluster-query-agent/pkg/agent"
	"github.com/NVIDIA/cluster-query-agent/pkg/tools"
)

// Request is the body of POST /query-agent.
type Request struct {
	Question string `json:"question" yaml:"question"`
}

// Response is the answer to one question.
type Response struct {
	ID         string       `json:"id,omitempty" yaml:"id,omitempty"`
	Question   string       `json:"question" yaml:"question"`
	Answer     string       `json:"answer" yaml:"answer"`
	State      agent.State  `json:"state,omitempty" yaml:"state,omitempty"`
	Reason     agent.Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
	Iterations int          `json:"iterations,omitempty" yaml:"iterations,omitempty"`
}

// NewResponse builds the response for a finished loop. Verbose responses
// carry the loop's terminal state.
func NewResponse(res *agent.Result, verbose bool) Response {
	r := Response{
		Question: res.Question,
		Answer:   res.Answer,
	}
	if verbose {
		r.ID = res.ID
		r.State = res.State
		r.Reason = res.Reason
		r.Iterations = res.Iterations
	}
	return r
}

// TableHeader implements serializer.Tabular.
func (r Response) TableHeader() []string {
	return []string{"QUESTION", "ANSWER"}
}

// TableRows implements serializer.Tabular.
func (r Response) TableRows() [][]string {
	return [][]string{{r.Question, r.Answer}}
}

// Responses renders several answers as one table.
type Responses []Response

// TableHeader implements serializer.Tabular.
func (rs Responses) TableHeader() []string {
	return []string{"QUESTION", "ANSWER", "STATE", "REASON"}
}

// TableRows implements serializer.Tabular.
func (rs Responses) TableRows() [][]string {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{r.Question, r.Answer, string(r.State), string(r.Reason)})
	}
	return rows
}

// Catalog is the body of GET /v1/tools.
type Catalog struct {
	Tools []tools.Spec `json:"tools" yaml:"tools"`
}

// TableHeader implements serializer.Tabular.
func (c Catalog) TableHeader() []string {
	return []string{"NAME", "READ-ONLY", "PARAMETERS", "DESCRIPTION"}
}

// TableRows implements serializer.Tabular.
func (c Catalog) TableRows() [][]string {
	rows := make([][]string, 0, len(c.Tools))
	for _, s := range c.Tools {
		rows = append(rows, []string{
			s.Name,
			strconv.FormatBool(s.ReadOnly),
			parameterList(s),
			firstSentence(s.Description),
		})
	}
	return rows
}

// parameterList renders parameter names, required ones marked with '*'.
func parameterList(s tools.Spec) string {
	if s.Parameters == nil || len(s.Parameters.Properties) == 0 {
		return "-"
	}
	required := make(map[string]bool, len(s.Parameters.Required))
	for _, r := range s.Parameters.Required {
		required[r] = true
	}
	names := make([]string, 0, len(s.Parameters.Properties))
	for name := range s.Parameters.Properties {
		if required[name] {
			name += "*"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
