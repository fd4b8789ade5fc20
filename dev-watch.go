//go:build ignore

package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const binary = "./ticket-booking"

func main() {
	fmt.Println("Ticket booking hot reload")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(".", "internal", "cmd") {
		if err := watcher.Add(dir); err != nil {
			log.Printf("Error watching %s: %v", dir, err)
			continue
		}
		fmt.Printf("Watching: %s\n", dir)
	}

	var cmd *exec.Cmd
	restart := make(chan struct{}, 1)
	go runLoop(&cmd, restart)
	restart <- struct{}{}

	// Editors write several events per save; collapse them into one rebuild.
	var debounce <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".go") || strings.HasSuffix(event.Name, "_test.go") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			fmt.Printf("File changed: %s\n", filepath.Base(event.Name))
			debounce = time.After(500 * time.Millisecond)

		case <-debounce:
			debounce = nil
			if cmd != nil && cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
			select {
			case restart <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Println("Error:", err)
		}
	}
}

// watchDirs returns the roots plus every directory below them, skipping the
// read-only reference pack and hidden directories.
func watchDirs(roots ...string) []string {
	var dirs []string
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			if root == "." && path != "." {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
	}
	return dirs
}

func runLoop(cmd **exec.Cmd, restart <-chan struct{}) {
	for range restart {
		fmt.Println("Building application...")
		build := exec.Command("go", "build", "-o", binary, ".")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr

		if err := build.Run(); err != nil {
			fmt.Printf("Build failed: %v\n", err)
			continue
		}

		fmt.Println("Starting ticket booking service...")
		fmt.Println(strings.Repeat("=", 50))

		*cmd = exec.Command(binary)
		(*cmd).Stdout = os.Stdout
		(*cmd).Stderr = os.Stderr

		if err := (*cmd).Start(); err != nil {
			fmt.Printf("Failed to start: %v\n", err)
			continue
		}

		go func(c *exec.Cmd) { _ = c.Wait() }(*cmd)
	}
}
