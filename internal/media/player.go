package media

import (
	"fmt"
	"os/exec"
)

// OpenAt starts an external player at the given timestamp. The player
// "auto" tries vlc, then mpv, then ffplay. The process is detached;
// the caller does not wait for playback to finish.
func OpenAt(player, path string, startSec float64) error {
	if startSec < 0 {
		startSec = 0
	}

	var cmd *exec.Cmd
	switch {
	case player == "vlc" || (player == "auto" && commandExists("vlc")):
		cmd = exec.Command("vlc", fmt.Sprintf("--start-time=%g", startSec), path)
	case player == "mpv" || (player == "auto" && commandExists("mpv")):
		cmd = exec.Command("mpv", fmt.Sprintf("--start=%g", startSec), path)
	case player == "ffplay" || player == "auto":
		cmd = exec.Command("ffplay", "-ss", fmt.Sprintf("%g", startSec), "-autoexit", path)
	default:
		return fmt.Errorf("unknown media player %q", player)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}

	// Reap the child when it exits so it never lingers as a zombie
	go cmd.Wait()

	return nil
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
