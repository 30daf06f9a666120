package templates

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/casetypes"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(SiteInfo{Name: "Case Eval", Phone: "555-0100"})
	require.NoError(t, err)
	return r
}

func render(t *testing.T, r *Renderer, name string, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page))
	return buf.String()
}

func TestRenderer_PublicPages(t *testing.T) {
	r := newTestRenderer(t)
	roundup, ok := casetypes.BySlug("roundup")
	require.True(t, ok)

	home := render(t, r, PageHome, Page{Body: HomeBody{CaseTypes: casetypes.All()}})
	assert.Contains(t, home, "<title>Case Eval</title>")
	assert.Contains(t, home, `href="/cases/roundup"`)
	assert.Contains(t, home, "tel:555-0100")
	assert.NotContains(t, home, "/admin/logout")

	detail := render(t, r, PageCaseType, Page{Title: roundup.Name, Body: CaseBody{CaseType: roundup}})
	assert.Contains(t, detail, "<title>Roundup | Case Eval</title>")
	assert.Contains(t, detail, roundup.Qualifications[0])
	assert.Contains(t, detail, `/evaluation?caseType=roundup`)

	form := render(t, r, PageEvaluation, Page{Body: EvaluationBody{CaseTypes: casetypes.All(), Selected: "paraquat"}})
	assert.Contains(t, form, `<option value="paraquat" selected>`)
	assert.Contains(t, form, `/api/v1/submissions`)
	assert.Contains(t, form, `data-case="camp-lejeune"`)

	missing := render(t, r, PageNotFound, Page{Body: NotFoundBody{Path: "/nope<script>"}})
	assert.Contains(t, missing, "/nope&lt;script&gt;")
}

func TestRenderer_AdminPages(t *testing.T) {
	r := newTestRenderer(t)
	created := time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC)
	lead := &leads.Lead{
		ID:        "01HQ0000000000000000000000",
		FirstName: "Jane",
		LastName:  "<b>Doe</b>",
		Email:     "jane@example.com",
		Phone:     "555-0101",
		CaseType:  "camp-lejeune",
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
		CreatedAt: created,
	}

	login := render(t, r, PageAdminLogin, Page{Admin: true, Body: LoginBody{
		Email:       "admin@example.com",
		Error:       "Invalid credentials",
		CallbackURL: "/admin/submissions?page=2",
	}})
	assert.Contains(t, login, "Invalid credentials")
	assert.Contains(t, login, `value="/admin/submissions?page=2"`)
	assert.Contains(t, login, "noindex")

	list := render(t, r, PageAdminList, Page{Admin: true, Body: ListBody{
		Submissions: []*leads.Lead{lead},
		Pagination:  leads.NewPagination(11, 1, 10),
		Search:      "jane",
		From:        1,
		To:          1,
		NextURL:     "/admin/submissions?page=2&search=jane",
	}})
	assert.Contains(t, list, "Jane &lt;b&gt;Doe&lt;/b&gt;")
	assert.Contains(t, list, "Camp Lejeune")
	assert.Contains(t, list, "Mar 1, 2024 3:04 PM UTC")
	assert.Contains(t, list, "Page 1 of 2")
	assert.Contains(t, list, "Next &rarr;")
	assert.NotContains(t, list, "Previous")

	empty := render(t, r, PageAdminList, Page{Admin: true, Body: ListBody{
		Submissions: []*leads.Lead{},
		Pagination:  leads.NewPagination(0, 1, 10),
	}})
	assert.Contains(t, empty, "No submissions")
	assert.Contains(t, empty, "Page 1 of 1")

	detail := render(t, r, PageAdminDetail, Page{Admin: true, Body: DetailBody{Lead: lead}})
	assert.Contains(t, detail, "203.0.113.7")
	assert.Contains(t, detail, "Mozilla/5.0")
	assert.Contains(t, detail, "Not provided")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	err := r.Render(&buf, "missing", Page{})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}
