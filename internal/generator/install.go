package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viableos/viableos/internal/version"
	"github.com/viableos/viableos/pkg/models"
)

// writeInstallScript emits install.sh with a phased rollout: first S1 unit
// plus the Coordinator, then remaining S1 units, then the management systems.
func writeInstallScript(outputDir string, vs *models.ViableSystem, entries []agentEntry) error {
	var s1Entries []agentEntry
	byID := make(map[string]agentEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
		if strings.HasPrefix(e.ID, "s1-") {
			s1Entries = append(s1Entries, e)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `#!/bin/bash
# ViableOS OpenClaw Setup — %s
# Generated by %s
#
# Installs the agent team sequentially. Start with one thing working
# end-to-end before adding more agents.

set -e

echo "=== ViableOS Setup for: %s ==="
echo ""

command -v openclaw >/dev/null 2>&1 || {
    echo "ERROR: OpenClaw not found."
    echo "Install it first: npm install -g openclaw@latest"
    exit 1
}

echo "[OK] OpenClaw found"

SCRIPT_DIR="$(cd "$(dirname "$0")" && pwd)"
OPENCLAW_DIR="$HOME/.openclaw"

echo ""
echo "Copying shared resources..."
mkdir -p "$OPENCLAW_DIR/shared"
cp -r "$SCRIPT_DIR/shared/"* "$OPENCLAW_DIR/shared/" 2>/dev/null || true
echo "[OK] Shared resources copied"

echo ""
echo "=== Installing agents ==="
echo ""

`, vs.Name, version.UserAgent(), vs.Name)

	b.WriteString(`echo "--- Phase 1: Core (first S1 unit + Coordinator) ---"` + "\n")
	if len(s1Entries) > 0 {
		writeAgentBlock(&b, s1Entries[0], "Phase 1")
	}
	if e, ok := byID["s2-coordination"]; ok {
		writeAgentBlock(&b, e, "Phase 1")
	}

	if len(s1Entries) > 1 {
		b.WriteString("\necho \"\"\necho \"--- Phase 2: Additional S1 units ---\"\n")
		for _, e := range s1Entries[1:] {
			writeAgentBlock(&b, e, "Phase 2")
		}
	}

	b.WriteString("\necho \"\"\necho \"--- Phase 3: Management systems ---\"\n")
	for _, id := range []string{"s3-optimization", "s4-intelligence", "s3star-audit", "s5-policy"} {
		if e, ok := byID[id]; ok {
			writeAgentBlock(&b, e, "Phase 3")
		}
	}

	firstName := "first unit"
	firstID := "s1-unit"
	if len(s1Entries) > 0 {
		firstName = s1Entries[0].Name
		firstID = s1Entries[0].ID
	}
	fmt.Fprintf(&b, `
echo ""
echo "=== Setup complete: %d agents configured ==="
echo ""
echo "Next steps:"
echo "  1. Configure API keys: openclaw configure"
echo "  2. Restart gateway: openclaw gateway restart"
echo "  3. Verify: openclaw agents list"
echo ""
echo "=== IMPORTANT: Start Small ==="
echo "Don't activate all agents at once."
echo "Recommended rollout:"
echo "  1. Start %s alone: openclaw --agent %s"
echo "  2. Get it working end-to-end (give it a few days)"
echo "  3. Then add Coordinator: openclaw --agent s2-coordination"
echo "  4. Then add remaining S1 units one at a time"
echo "  5. Finally add S3, S4, S3*, S5"
`, len(entries), firstName, firstID)

	path := filepath.Join(outputDir, "install.sh")
	if err := os.WriteFile(path, []byte(b.String()), 0755); err != nil {
		return fmt.Errorf("write install script: %w", err)
	}
	return nil
}

func writeAgentBlock(b *strings.Builder, e agentEntry, phase string) {
	var flags string
	if len(e.Fallbacks) > 0 {
		flags += fmt.Sprintf(" --fallbacks %q", strings.Join(e.Fallbacks, ","))
	}
	if e.HeartbeatModel != "" {
		flags += fmt.Sprintf(" --heartbeat-model %q", e.HeartbeatModel)
	}
	fmt.Fprintf(b, `echo "  [%s] Adding: %s (%s)"
openclaw agents add %s \
  --workspace "$SCRIPT_DIR/%s" \
  --model %q%s \
  --non-interactive 2>/dev/null || echo "    (may already exist)"
`, phase, e.Name, e.ID, e.ID, e.Workspace, e.Model, flags)
}
