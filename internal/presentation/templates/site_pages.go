package templates

const homeHTML = `{{define "content"}}
<section class="hero">
  <h1>Were you harmed by a dangerous product?</h1>
  <p class="muted">Find out in minutes whether you may qualify for compensation. Our case evaluation is free and there is no obligation.</p>
  <a class="btn" href="/evaluation">Start your free case evaluation</a>
</section>
<section id="cases">
  <h2>Cases we are reviewing</h2>
  <div class="grid">
    {{- range .Body.CaseTypes}}
    <div class="card">
      <h3><a href="/cases/{{.Slug}}">{{.Name}}</a></h3>
      <p>{{.Summary}}</p>
      <a href="/evaluation?caseType={{.Slug}}">Check eligibility</a>
    </div>
    {{- end}}
  </div>
</section>
{{end}}`

const caseHTML = `{{define "content"}}
{{- with .Body.CaseType}}
<section class="hero">
  <h1>{{.Name}} Lawsuit</h1>
  <p>{{.Description}}</p>
</section>
<div class="card">
  <h2>Who may qualify</h2>
  <ul>
    {{- range .Qualifications}}
    <li>{{.}}</li>
    {{- end}}
  </ul>
  <a class="btn" href="/evaluation?caseType={{.Slug}}">See if you qualify</a>
</div>
{{- end}}
{{end}}`

const evaluationHTML = `{{define "content"}}
<div class="narrow" style="max-width:640px">
  <h1>Free Case Evaluation</h1>
  <div class="steps"><span data-step-label="1" class="active">1. Your case</span><span>&rsaquo;</span><span data-step-label="2">2. Your health</span><span>&rsaquo;</span><span data-step-label="3">3. Contact details</span></div>
  <div id="form-alert" class="alert error" hidden></div>
  <div id="form-success" class="alert success" hidden>Thank you. Your case evaluation was received and a member of our team will contact you shortly.</div>
  <form id="evaluation-form" novalidate>
    <fieldset data-step="1" style="border:0;padding:0">
      <div class="field">
        <label for="caseType">Case type</label>
        <select id="caseType" name="caseType" required>
          <option value="">Select a case type</option>
          {{- range .Body.CaseTypes}}
          <option value="{{.Slug}}"{{if eq .Slug $.Body.Selected}} selected{{end}}>{{.Name}}</option>
          {{- end}}
        </select>
        <div class="error" data-error-for="caseType"></div>
      </div>
      <div class="field">
        <label for="exposurePeriod">How long were you exposed?</label>
        <select id="exposurePeriod" name="exposurePeriod">
          <option value="">Prefer not to say</option>
          {{- range .Body.CaseTypes}}
          {{- $slug := .Slug}}
          {{- range .ExposurePeriods}}
          <option value="{{.}}" data-case="{{$slug}}">{{.}}</option>
          {{- end}}
          {{- end}}
        </select>
      </div>
      <button type="button" class="btn" data-next="2">Continue</button>
    </fieldset>
    <fieldset data-step="2" style="border:0;padding:0" hidden>
      <div class="field">
        <label for="medicalCondition">Diagnosis or medical condition</label>
        <textarea id="medicalCondition" name="medicalCondition" rows="3"></textarea>
      </div>
      <div class="field">
        <label for="additionalInfo">Anything else we should know?</label>
        <textarea id="additionalInfo" name="additionalInfo" rows="4"></textarea>
      </div>
      <button type="button" class="btn secondary" data-next="1">Back</button>
      <button type="button" class="btn" data-next="3">Continue</button>
    </fieldset>
    <fieldset data-step="3" style="border:0;padding:0" hidden>
      <div class="field">
        <label for="firstName">First name</label>
        <input id="firstName" name="firstName" autocomplete="given-name" required>
        <div class="error" data-error-for="firstName"></div>
      </div>
      <div class="field">
        <label for="lastName">Last name</label>
        <input id="lastName" name="lastName" autocomplete="family-name" required>
        <div class="error" data-error-for="lastName"></div>
      </div>
      <div class="field">
        <label for="email">Email</label>
        <input id="email" name="email" type="email" autocomplete="email" required>
        <div class="error" data-error-for="email"></div>
      </div>
      <div class="field">
        <label for="phone">Phone</label>
        <input id="phone" name="phone" type="tel" autocomplete="tel" required>
        <div class="error" data-error-for="phone"></div>
      </div>
      <button type="button" class="btn secondary" data-next="2">Back</button>
      <button type="submit" class="btn">Submit my evaluation</button>
    </fieldset>
  </form>
</div>
<script>
(function () {
  var form = document.getElementById("evaluation-form");
  var alertBox = document.getElementById("form-alert");
  var caseSelect = document.getElementById("caseType");
  var periodSelect = document.getElementById("exposurePeriod");
  var fieldStep = { caseType: "1", firstName: "3", lastName: "3", email: "3", phone: "3" };

  function show(step) {
    form.querySelectorAll("fieldset[data-step]").forEach(function (fs) {
      fs.hidden = fs.getAttribute("data-step") !== step;
    });
    document.querySelectorAll("[data-step-label]").forEach(function (el) {
      el.classList.toggle("active", el.getAttribute("data-step-label") === step);
    });
  }

  function filterPeriods() {
    var slug = caseSelect.value;
    Array.prototype.forEach.call(periodSelect.options, function (opt) {
      var owner = opt.getAttribute("data-case");
      opt.hidden = owner !== null && owner !== slug;
      if (opt.hidden && opt.selected) { periodSelect.value = ""; }
    });
  }

  function clearErrors() {
    alertBox.hidden = true;
    form.querySelectorAll("[data-error-for]").forEach(function (el) { el.textContent = ""; });
  }

  caseSelect.addEventListener("change", filterPeriods);
  filterPeriods();

  form.querySelectorAll("[data-next]").forEach(function (btn) {
    btn.addEventListener("click", function () {
      if (btn.getAttribute("data-next") === "2" && !caseSelect.value) {
        form.querySelector('[data-error-for="caseType"]').textContent = "Please choose a case type";
        return;
      }
      show(btn.getAttribute("data-next"));
    });
  });

  form.addEventListener("submit", function (event) {
    event.preventDefault();
    clearErrors();
    var payload = {};
    new FormData(form).forEach(function (value, key) { payload[key] = String(value).trim(); });
    var submit = form.querySelector('button[type="submit"]');
    submit.disabled = true;

    fetch("/api/v1/submissions", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(payload)
    }).then(function (res) {
      return res.json().then(function (body) { return { status: res.status, body: body }; });
    }).then(function (result) {
      if (result.status === 201) {
        form.hidden = true;
        document.getElementById("form-success").hidden = false;
        return;
      }
      var fields = (result.body && result.body.fields) || {};
      var firstStep = null;
      Object.keys(fields).forEach(function (name) {
        var el = form.querySelector('[data-error-for="' + name + '"]');
        if (el) { el.textContent = fields[name]; }
        if (fieldStep[name] && (firstStep === null || fieldStep[name] < firstStep)) { firstStep = fieldStep[name]; }
      });
      if (firstStep) { show(firstStep); }
      alertBox.textContent = (result.body && result.body.message) || "Something went wrong. Please try again.";
      alertBox.hidden = false;
    }).catch(function () {
      alertBox.textContent = "We could not reach the server. Please try again.";
      alertBox.hidden = false;
    }).finally(function () {
      submit.disabled = false;
    });
  });
})();
</script>
{{end}}`

const notFoundHTML = `{{define "content"}}
<section class="hero">
  <h1>Page not found</h1>
  <p class="muted">We could not find <code>{{.Body.Path}}</code>.</p>
  <a class="btn" href="/">Back to home</a>
</section>
{{end}}`
