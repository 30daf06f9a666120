package templates

const layoutHTML = `{{define "layout"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{if .Title}}{{.Title}} | {{end}}{{.Site.Name}}</title>
  {{- if .Admin}}
  <meta name="robots" content="noindex, nofollow">
  {{- end}}
  <style>{{css}}</style>
</head>
<body>
  <header class="site">
    <div class="container">
      {{- if .Admin}}
      <a href="/admin"><strong>{{.Site.Name}}</strong> Admin</a>
      <nav>
        <a href="/admin/submissions">Submissions</a>
        <a href="/" target="_blank" rel="noopener">View site</a>
        <form method="post" action="/admin/logout" style="display:inline">
          <button type="submit" class="btn secondary" style="margin-left:1.25rem;padding:.35rem .8rem">Log out</button>
        </form>
      </nav>
      {{- else}}
      <a href="/"><strong>{{.Site.Name}}</strong></a>
      <nav>
        <a href="/#cases">Cases</a>
        <a href="/evaluation">Free Case Evaluation</a>
        {{- if .Site.Phone}}
        <a href="tel:{{.Site.Phone}}">{{.Site.Phone}}</a>
        {{- end}}
      </nav>
      {{- end}}
    </div>
  </header>
  <main>
    <div class="container">
      {{template "content" .}}
    </div>
  </main>
  <footer class="site">
    <div class="container">
      &copy; {{year}} {{.Site.Name}}.
      {{- if not .Admin}}
      This website is attorney advertising. Submitting a case evaluation does not create an attorney-client relationship.
      {{- end}}
    </div>
  </footer>
</body>
</html>{{end}}`
