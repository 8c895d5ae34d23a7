package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/radclients/internal/client/panel"
)

func TestRepl(t *testing.T) {
	var deleted string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/clients" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":1,"name":"Ana","last_name":"Diaz","id_number":"V-1","status":"Active","username":"ana","area":"Centro"}]`))
		case r.URL.Path == "/clients/V-404":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/clients/V-1" && r.Method == http.MethodDelete:
			deleted = "V-1"
			_, _ = w.Write([]byte(`{"message":"Cliente eliminado"}`))
		case r.URL.Path == "/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid username or password"}`))
		default:
			http.Error(w, "Error del servidor", http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	input := strings.Join([]string{
		"help",
		"list",
		"get V-404",
		"get",
		"login", "admin", "wrong",
		"status V-1 Active",
		"delete V-1",
		"bogus",
		"exit",
		"list",
	}, "\n") + "\n"
	var out bytes.Buffer

	repl(panel.New(ts.URL), strings.NewReader(input), &out)

	got := out.String()
	for _, want := range []string{
		"Available commands",
		"V-1",
		"Ana Diaz",
		"Centro",
		"Client not found",
		"Usage: get <id_number>",
		"Invalid username or password",
		"server error: Error del servidor",
		"Client deleted",
		"Unknown command",
		"Bye",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if deleted != "V-1" {
		t.Errorf("deleted = %q; want V-1", deleted)
	}
	if strings.Count(got, "ID NUMBER") != 1 {
		t.Error("commands after exit must not run")
	}
}

func TestRepl_Edit(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.NotFound(w, r)
			return
		}
		got = nil
		_ = json.NewDecoder(r.Body).Decode(&got)
		switch r.URL.Path {
		case "/clients/V-1":
			_, _ = w.Write([]byte(`{"id":1,"id_number":"V-1","name":"Ana","status":"Active","username":"ana","password":"pw"}`))
		case "/clients/V-404":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Zona no encontrada"}`))
		}
	}))
	defer ts.Close()

	client := func(idNumber, zoneName string) []string {
		return []string{"Ana", "Diaz", idNumber, "Active", "3", "ana", "pw", zoneName}
	}
	var lines []string
	lines = append(lines, "edit")
	lines = append(lines, "edit V-1")
	lines = append(lines, client("V-1", "Norte")...)
	lines = append(lines, "edit V-404")
	lines = append(lines, client("V-404", "")...)
	lines = append(lines, "edit V-9")
	lines = append(lines, client("V-9", "Atlantis")...)
	lines = append(lines, "exit")

	var out bytes.Buffer
	repl(panel.New(ts.URL), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)

	output := out.String()
	for _, want := range []string{
		"Usage: edit <id_number>",
		"Client V-1 updated",
		"Client not found",
		"server error: Zona no encontrada",
		"Enter zone name",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if got["zone_name"] != "Atlantis" || got["id_zone"] != float64(3) {
		t.Errorf("last request body = %v", got)
	}
}

func TestRepl_StopsOnEOF(t *testing.T) {
	var out bytes.Buffer
	repl(panel.New("http://127.0.0.1:0"), strings.NewReader("\n\n"), &out)

	if strings.Count(out.String(), "radclients> ") != 3 {
		t.Errorf("output = %q; want three prompts", out.String())
	}
}
