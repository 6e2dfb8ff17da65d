package render

// pageTemplate is the single self-contained page layout. All styling is
// inline; the page fetches no external assets. Layout variants and the
// professional modifier hang off the body class.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}} | CV</title>
<style>
:root { --accent: {{.Accent}}; }
* { box-sizing: border-box; }
body { margin: 0; font-family: "Helvetica Neue", Arial, sans-serif; color: #23272f; background: #f6f7f9; }
body.professional { font-family: Georgia, "Times New Roman", serif; background: #fbfaf8; }
.page { max-width: 840px; margin: 0 auto; padding: 32px 24px 64px; }
header { padding: 24px 0 8px; }
header h1 { color: var(--accent); font-size: 2.2rem; margin: 0 0 8px; }
body.theme-banner header { background: var(--accent); padding: 40px 32px; border-radius: 12px; }
body.theme-banner header h1 { color: #ffffff; }
body.theme-banner header .summary { color: #e8eaed; }
.summary { font-size: 1.05rem; line-height: 1.5; margin: 0; }
section { margin-top: 28px; }
h2 { color: var(--accent); font-size: 1.1rem; text-transform: uppercase; letter-spacing: 0.08em; border-bottom: 2px solid var(--accent); padding-bottom: 6px; margin: 0; }
body.professional h2 { text-transform: none; letter-spacing: normal; }
.block { white-space: pre-wrap; line-height: 1.55; margin: 10px 0 0; }
.chips { list-style: none; display: flex; flex-wrap: wrap; gap: 8px; padding: 0; margin: 12px 0 0; }
.chip { background: var(--accent); color: #ffffff; padding: 4px 12px; border-radius: 999px; font-size: 0.85rem; }
.empty { color: #8a8f98; font-style: italic; margin: 10px 0 0; }
</style>
</head>
<body class="{{.BodyClass}}">
<div class="page">
<header>
<h1>{{.Name}}</h1>
{{if .Summary}}<p class="summary">{{nl2br .Summary}}</p>{{else}}<p class="summary empty">No summary found</p>{{end}}
</header>
<main>
{{range .BlocksAbove}}<section>
<h2>{{.Label}}</h2>
{{if .Value}}<p class="block">{{nl2br .Value}}</p>{{else}}<p class="empty">{{.Placeholder}}</p>{{end}}
</section>
{{end}}<section>
<h2>Skills</h2>
{{if .Skills}}<ul class="chips">{{range .Skills}}<li class="chip">{{.}}</li>{{end}}</ul>{{else}}<p class="empty">No skills found</p>{{end}}
</section>
{{range .BlocksBelow}}<section>
<h2>{{.Label}}</h2>
{{if .Value}}<p class="block">{{nl2br .Value}}</p>{{else}}<p class="empty">{{.Placeholder}}</p>{{end}}
</section>
{{end}}</main>
</div>
</body>
</html>
`
