package tools

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/amadeusai/amadeus/internal/schema"
)

// launcher abstracts process starting so tests can stub it out.
type launcher func(name string, args ...string) error

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() // reap so the child doesn't zombie
	return nil
}

// OpenProgram launches an application by name, detached from the assistant.
func OpenProgram(name string, launch launcher) (string, error) {
	if launch == nil {
		launch = startDetached
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("program name is empty")
	}

	var err error
	switch runtime.GOOS {
	case "darwin":
		err = launch("open", "-a", name)
	case "windows":
		err = launch("cmd", "/c", "start", "", name)
	default:
		err = launch(name)
	}
	if err != nil {
		return "", fmt.Errorf("could not launch %q: %w", name, err)
	}
	return fmt.Sprintf("Launched %s.", name), nil
}

// OpenWebsite opens a URL in the default browser.
func OpenWebsite(url string, launch launcher) (string, error) {
	if launch == nil {
		launch = startDetached
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("URL is empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	var err error
	switch runtime.GOOS {
	case "darwin":
		err = launch("open", url)
	case "windows":
		err = launch("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		err = launch("xdg-open", url)
	}
	if err != nil {
		return "", fmt.Errorf("could not open %s: %w", url, err)
	}
	return fmt.Sprintf("Opened %s in your browser.", url), nil
}

// TerminateProgram kills all processes whose name contains the given name.
func TerminateProgram(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "", fmt.Errorf("program name is empty")
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("list processes: %w", err)
	}

	killed := 0
	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(pname), name) {
			if err := p.TerminateWithContext(ctx); err == nil {
				killed++
			}
		}
	}
	if killed == 0 {
		return fmt.Sprintf("No running process matching %q found.", name), nil
	}
	return fmt.Sprintf("Terminated %d process(es) matching %q.", killed, name), nil
}

// SystemTools returns program and browser control tools.
func SystemTools() []*schema.ToolDefinition {
	return []*schema.ToolDefinition{
		{
			Name:        "open_program",
			Description: "Launches an application. Args: program_name (str)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"program_name": {Type: schema.ParamString, Required: true, Description: "Name of the application to launch"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return OpenProgram(argString(args, "program_name", ""), nil)
			},
		},
		{
			Name:        "open_website",
			Description: "Opens a URL in the default browser. Args: url (str)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"url": {Type: schema.ParamString, Required: true, Description: "URL or domain to open"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return OpenWebsite(argString(args, "url", ""), nil)
			},
		},
		{
			Name:        "terminate_program",
			Description: "Terminates running processes by name. Args: program_name (str)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"program_name": {Type: schema.ParamString, Required: true, Description: "Name of the program to terminate"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return TerminateProgram(ctx, argString(args, "program_name", ""))
			},
		},
	}
}
