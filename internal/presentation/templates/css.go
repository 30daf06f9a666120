package templates

import "html/template"

// siteCSS is inlined into every page so the binary has no static assets.
const siteCSS template.CSS = `
*,*::before,*::after{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",Roboto,sans-serif;color:#1f2937;background:#f9fafb;line-height:1.5}
a{color:#1d4ed8}
.container{max-width:1100px;margin:0 auto;padding:0 1rem}
header.site{background:#0f172a;color:#fff}
header.site .container{display:flex;align-items:center;justify-content:space-between;padding-top:1rem;padding-bottom:1rem}
header.site a{color:#fff;text-decoration:none}
header.site nav a{margin-left:1.25rem;font-size:.95rem}
main{padding:2rem 0 3rem}
footer.site{border-top:1px solid #e5e7eb;color:#6b7280;font-size:.875rem;padding:1.5rem 0}
.hero{padding:2.5rem 0}
.hero h1{font-size:2.25rem;margin:0 0 .75rem}
.btn{display:inline-block;background:#b91c1c;color:#fff;border:0;border-radius:.375rem;padding:.7rem 1.3rem;font-weight:600;text-decoration:none;cursor:pointer;font-size:1rem}
.btn.secondary{background:#e5e7eb;color:#111827}
.btn:disabled{opacity:.6;cursor:default}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(240px,1fr));gap:1rem}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:.5rem;padding:1.25rem}
.card h3{margin-top:0}
form .field{margin-bottom:1rem}
form label{display:block;font-weight:600;margin-bottom:.25rem}
form input,form select,form textarea{width:100%;padding:.55rem .7rem;border:1px solid #d1d5db;border-radius:.375rem;font:inherit}
form .error{color:#b91c1c;font-size:.85rem;margin-top:.25rem}
.alert{padding:.75rem 1rem;border-radius:.375rem;margin-bottom:1rem}
.alert.error{background:#fef2f2;color:#991b1b;border:1px solid #fecaca}
.alert.success{background:#f0fdf4;color:#166534;border:1px solid #bbf7d0}
.steps{display:flex;gap:.5rem;margin-bottom:1.5rem;font-size:.9rem;color:#6b7280}
.steps span.active{color:#111827;font-weight:700}
table.data{width:100%;border-collapse:collapse;background:#fff}
table.data th,table.data td{text-align:left;padding:.6rem .75rem;border-bottom:1px solid #e5e7eb;font-size:.9rem;vertical-align:top}
table.data th{background:#f3f4f6;font-weight:600}
.toolbar{display:flex;justify-content:space-between;align-items:center;gap:1rem;margin-bottom:1rem;flex-wrap:wrap}
.toolbar form{display:flex;gap:.5rem}
.pager{display:flex;justify-content:space-between;align-items:center;margin-top:1rem;font-size:.9rem}
dl.detail{display:grid;grid-template-columns:12rem 1fr;gap:.5rem 1rem;background:#fff;border:1px solid #e5e7eb;border-radius:.5rem;padding:1.25rem}
dl.detail dt{color:#6b7280}
dl.detail dd{margin:0;white-space:pre-wrap}
.narrow{max-width:420px;margin:0 auto}
.muted{color:#6b7280}
`
