package app

import (
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/angelofallars/hourbill/internal/config"
)

func (a *App) RegisterRoutes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", a.handleIndex)
	a.router.Get("/clients/{client}/{file}", a.handleArtifact)
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>hourbill - generated invoices</title></head>
<body>
<h1>Generated invoices</h1>
{{range .}}
<h2>{{.Name}}</h2>
{{if .Files}}
<ul>
{{$client := .Name}}
{{range .Files}}
<li><a href="/clients/{{$client}}/{{.}}">{{.}}</a></li>
{{end}}
</ul>
{{else}}
<p>No invoices yet.</p>
{{end}}
{{end}}
</body>
</html>
`))

type clientArtifacts struct {
	Name  string
	Files []string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	clients := make([]clientArtifacts, 0, len(a.cfg.Clients))
	for name, client := range a.cfg.Clients {
		clients = append(clients, clientArtifacts{
			Name:  name,
			Files: listArtifacts(client.SaveFolder),
		})
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })

	if err := indexTmpl.Execute(w, clients); err != nil {
		a.slog.Error("rendering invoice index failed", "err", err)
	}
}

// listArtifacts returns the folder's PDF filenames, newest first. The
// timestamp filenames sort lexically, so reverse order is enough.
func listArtifacts(folder string) []string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files
}

func (a *App) handleArtifact(w http.ResponseWriter, r *http.Request) {
	client, err := a.cfg.Client(chi.URLParam(r, "client"))
	if errors.Is(err, config.ErrUnknownClient) {
		http.NotFound(w, r)
		return
	}

	file := chi.URLParam(r, "file")
	// Only bare PDF filenames from the client's own folder are served.
	if file != filepath.Base(file) || !strings.HasSuffix(file, ".pdf") {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(client.SaveFolder, file))
}
