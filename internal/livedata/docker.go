package livedata

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DockerStatus returns "name  Up 43 hours (healthy)" style output for a
// container, checked locally when docker is installed or over ssh when host
// is set. Returns the placeholder on any failure or timeout.
func DockerStatus(ctx context.Context, name, host string) string {
	if name == "" {
		return Placeholder
	}

	var cmd *exec.Cmd
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	switch {
	case host != "":
		remote := fmt.Sprintf("docker ps --filter 'name=^%s$' --format '{{.Names}}  {{.Status}}'", name)
		cmd = exec.CommandContext(ctx, "ssh", "-o", "ConnectTimeout=3", host, remote)
	case dockerInstalled():
		cmd = exec.CommandContext(ctx, "docker", "ps",
			"--filter", "name=^"+name+"$",
			"--format", "{{.Names}}  {{.Status}}")
	default:
		return Placeholder
	}

	out, err := cmd.Output()
	if err != nil {
		return Placeholder
	}
	status := strings.TrimSpace(string(out))
	if status == "" {
		return Placeholder
	}
	return status
}

func dockerInstalled() bool {
	_, err := exec.LookPath("docker")
	return err == nil
}
