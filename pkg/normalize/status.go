package normalize

import "strings"

// statuses is the literal status vocabulary reported by Kubernetes for pods,
// containers, nodes, volumes and workloads.
var statuses = []string{
	"Running", "Pending", "Succeeded", "Failed", "Unknown",
	"CrashLoopBackOff", "ImagePullBackOff", "ErrImagePull", "ErrImageNeverPull",
	"InvalidImageName", "CreateContainerConfigError", "CreateContainerError",
	"RunContainerError", "ContainerCreating", "PodInitializing",
	"Terminating", "Terminated", "Completed", "Error", "OOMKilled", "Evicted",
	"ContainerStatusUnknown", "Waiting",
	"Ready", "NotReady", "SchedulingDisabled",
	"Bound", "Available", "Released", "Lost",
	"Active", "Complete", "Suspended",
}

var statusIndex = func() map[string]string {
	m := make(map[string]string, len(statuses))
	for _, s := range statuses {
		m[statusKey(s)] = s
	}
	return m
}()

func statusKey(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Status maps a status word or phrase to its canonical spelling,
// e.g. "crashloopbackoff" to "CrashLoopBackOff" or "not ready" to "NotReady".
func Status(s string) (string, bool) {
	v, ok := statusIndex[statusKey(Clean(s))]
	return v, ok
}

// findStatus returns the first canonical status in a phrase, preferring the
// whole phrase, then word pairs, then single words.
func findStatus(s string) (string, bool) {
	if v, ok := Status(s); ok {
		return v, true
	}
	words := strings.Fields(s)
	for i := 0; i+1 < len(words); i++ {
		if v, ok := Status(words[i] + words[i+1]); ok {
			return v, true
		}
	}
	for _, w := range words {
		if v, ok := Status(strings.Trim(w, ",.:;()")); ok {
			return v, true
		}
	}
	return "", false
}
