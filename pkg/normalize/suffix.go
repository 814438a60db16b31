// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package normalize

import "strings"

// controllerAlphabet is the character set Kubernetes uses for generated name
// suffixes (k8s.io/apimachinery/pkg/util/rand). It has no vowels, so ordinary
// words rarely match it.
const controllerAlphabet = "bcdfghjklmnpqrstvwxz2456789"

const (
	podSuffixLen     = 5
	hashSuffixMinLen = 8
	hashSuffixMaxLen = 10
)

// isGenerated reports whether a name segment looks machine generated: lower-case
// alphanumerics that either contain a digit or use only the controller alphabet.
func isGenerated(seg string) bool {
	if seg == "" {
		return false
	}
	hasDigit := false
	inAlphabet := true
	for _, r := range seg {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
		default:
			return false
		}
		if !strings.ContainsRune(controllerAlphabet, r) {
			inAlphabet = false
		}
	}
	return hasDigit || inAlphabet
}

func isPodSuffix(seg string) bool {
	return len(seg) == podSuffixLen && isGenerated(seg)
}

// isLowerAlnum reports whether seg holds only lower-case letters and digits.
func isLowerAlnum(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func isHashSuffix(seg string) bool {
	return len(seg) >= hashSuffixMinLen && len(seg) <= hashSuffixMaxLen && isGenerated(seg)
}

// suffixSegments returns how many trailing dash-separated segments of name are
// generated: 2 for a pod of a Deployment or CronJob (hash + random), 1 for a
// ReplicaSet or a DaemonSet/Job pod, 0 otherwise. At least one base segment
// always remains.
func suffixSegments(name string) int {
	segs := strings.Split(name, "-")
	n := len(segs)
	if n < 2 || segs[0] == "" {
		return 0
	}
	last := segs[n-1]
	// After a template hash any five-character tail is the pod's random part.
	if n >= 3 && isHashSuffix(segs[n-2]) && len(last) == podSuffixLen && isLowerAlnum(last) {
		return 2
	}
	if isPodSuffix(last) || isHashSuffix(last) {
		return 1
	}
	return 0
}

// HasGeneratedSuffix reports whether name ends in a controller-generated suffix.
// StatefulSet ordinals such as "-0" are not generated suffixes.
func HasGeneratedSuffix(name string) bool {
	return suffixSegments(name) > 0
}

// StripGeneratedSuffix removes controller-generated suffixes from name,
// e.g. "my-deployment-56c598c8fc-x7g2p" becomes "my-deployment".
func StripGeneratedSuffix(name string) string {
	k := suffixSegments(name)
	if k == 0 {
		return name
	}
	segs := strings.Split(name, "-")
	return strings.Join(segs[:len(segs)-k], "-")
}
