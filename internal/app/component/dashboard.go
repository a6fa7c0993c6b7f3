// Package component provides the component templates used by the dashboard
// web app. The components are written directly against the templ API rather
// than generated from .templ sources; the page is a single document and does
// not warrant a code generation step.
package component

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/quillback/pointsboard/internal/sec"
)

// Dashboard returns the full dashboard document for the given identity. The
// person list is rendered client-side by script polling the list endpoint;
// the browser re-sends the cached Basic credentials on those fetches, so no
// credential material is ever embedded in the markup. Admin controls and
// their script wiring are emitted only for admins; viewers receive a
// document with the admin fragments entirely absent.
func Dashboard(id sec.Identity) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeStrings(w,
			documentHead,
			`<body><header class="`, ClassSiteHeader, `"><h2>Welcome, `,
			templ.EscapeString(id.Username), ` (`, templ.EscapeString(id.Role), `)</h2></header>`,
			`<h3>Points:</h3><ul id="`, IDPersonList, `"></ul>`,
		); err != nil {
			return err
		}
		if id.IsAdmin() {
			if err := writeStrings(w, adminControls); err != nil {
				return err
			}
		}
		if err := writeStrings(w, `<script>`, listScript); err != nil {
			return err
		}
		if id.IsAdmin() {
			if err := writeStrings(w, adminScript); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `loadPeople();</script></body></html>`)
		return err
	})
}

func writeStrings(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

const documentHead = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>` +
	`<meta name="viewport" content="width=device-width, initial-scale=1"/>` +
	`<title>Points Dashboard</title>` +
	`<style>body{font-family:Arial,sans-serif;margin:40px}input,button{margin:5px;padding:5px}</style>` +
	`</head>`

const adminControls = `<section id="` + IDAdminControls + `">` +
	`<h3>Add Person:</h3>` +
	`<form id="` + IDAddPersonForm + `">` +
	`<input type="text" id="` + IDNewName + `" placeholder="Name"/>` +
	`<button type="submit">Add</button></form>` +
	`<h3>Update Points:</h3>` +
	`<form id="` + IDUpdatePointsForm + `">` +
	`<input type="text" id="` + IDUpdateName + `" placeholder="Name"/>` +
	`<input type="number" id="` + IDNewPoints + `" placeholder="Points"/>` +
	`<button type="submit">Update</button></form>` +
	`</section>`

const listScript = `
async function loadPeople() {
  const res = await fetch("/persons");
  if (!res.ok) { return; }
  const data = await res.json();
  const list = document.getElementById("` + IDPersonList + `");
  list.replaceChildren();
  for (const p of data) {
    const li = document.createElement("li");
    li.textContent = p.name + " - " + p.points + " points";
    list.appendChild(li);
  }
}
`

const adminScript = `
document.getElementById("` + IDAddPersonForm + `").addEventListener("submit", async (e) => {
  e.preventDefault();
  const name = document.getElementById("` + IDNewName + `").value;
  await fetch("/add_person", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ name }),
  });
  loadPeople();
});
document.getElementById("` + IDUpdatePointsForm + `").addEventListener("submit", async (e) => {
  e.preventDefault();
  const name = document.getElementById("` + IDUpdateName + `").value;
  const points = parseInt(document.getElementById("` + IDNewPoints + `").value, 10);
  await fetch("/update_points", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ name, points }),
  });
  loadPeople();
});
`
