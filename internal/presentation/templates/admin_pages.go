package templates

const adminLoginHTML = `{{define "content"}}
<div class="narrow">
  <h1>Admin sign in</h1>
  {{- if .Body.Error}}
  <div class="alert error">{{.Body.Error}}</div>
  {{- end}}
  <form method="post" action="/admin/login" class="card">
    <input type="hidden" name="callbackUrl" value="{{.Body.CallbackURL}}">
    <div class="field">
      <label for="email">Email</label>
      <input id="email" name="email" type="email" value="{{.Body.Email}}" autocomplete="username" required autofocus>
    </div>
    <div class="field">
      <label for="password">Password</label>
      <input id="password" name="password" type="password" autocomplete="current-password" required>
    </div>
    <button type="submit" class="btn">Sign in</button>
  </form>
</div>
{{end}}`

const adminListHTML = `{{define "content"}}
{{- with .Body}}
<div class="toolbar">
  <h1 style="margin:0">Submissions</h1>
  <form method="get" action="/admin/submissions">
    <input type="search" name="search" value="{{.Search}}" placeholder="Search name, email or case type">
    <input type="hidden" name="limit" value="{{.Pagination.Limit}}">
    <button type="submit" class="btn secondary">Search</button>
    {{- if .Search}}
    <a class="btn secondary" href="/admin/submissions">Clear</a>
    {{- end}}
  </form>
</div>
<p class="muted">
  {{- if .Pagination.Total}}
  Showing {{.From}}&ndash;{{.To}} of {{.Pagination.Total}} submissions{{if .Search}} matching &ldquo;{{.Search}}&rdquo;{{end}}.
  {{- else}}
  No submissions{{if .Search}} match &ldquo;{{.Search}}&rdquo;{{end}}.
  {{- end}}
</p>
<table class="data">
  <thead>
    <tr><th>Submitted</th><th>Name</th><th>Email</th><th>Phone</th><th>Case type</th><th>IP address</th></tr>
  </thead>
  <tbody>
    {{- range .Submissions}}
    <tr>
      <td><a href="/admin/submissions/{{.ID}}">{{formatTime .CreatedAt}}</a></td>
      <td>{{.FullName}}</td>
      <td><a href="mailto:{{.Email}}">{{.Email}}</a></td>
      <td>{{.Phone}}</td>
      <td>{{caseName .CaseType}}</td>
      <td>{{.IPAddress}}</td>
    </tr>
    {{- else}}
    <tr><td colspan="6" class="muted">Nothing to show on this page.</td></tr>
    {{- end}}
  </tbody>
</table>
<div class="pager">
  <span>{{if .PrevURL}}<a href="{{.PrevURL}}">&larr; Previous</a>{{end}}</span>
  <span class="muted">Page {{.Pagination.Page}} of {{if .Pagination.Pages}}{{.Pagination.Pages}}{{else}}1{{end}}</span>
  <span>{{if .NextURL}}<a href="{{.NextURL}}">Next &rarr;</a>{{end}}</span>
</div>
{{- end}}
{{end}}`

const adminDetailHTML = `{{define "content"}}
{{- with .Body.Lead}}
<p><a href="/admin/submissions">&larr; All submissions</a></p>
<h1>{{.FullName}}</h1>
<dl class="detail">
  <dt>Submission ID</dt><dd>{{.ID}}</dd>
  <dt>Email</dt><dd><a href="mailto:{{.Email}}">{{.Email}}</a></dd>
  <dt>Phone</dt><dd><a href="tel:{{.Phone}}">{{.Phone}}</a></dd>
  <dt>Case type</dt><dd>{{caseName .CaseType}}</dd>
  <dt>Exposure period</dt><dd>{{or .ExposurePeriod "Not provided"}}</dd>
  <dt>Medical condition</dt><dd>{{or .MedicalCondition "Not provided"}}</dd>
  <dt>Additional information</dt><dd>{{or .AdditionalInfo "Not provided"}}</dd>
  <dt>Submitted</dt><dd>{{formatTime .CreatedAt}}</dd>
  <dt>IP address</dt><dd>{{.IPAddress}}</dd>
  <dt>User agent</dt><dd>{{.UserAgent}}</dd>
</dl>
{{- end}}
{{end}}`
