// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"
)

// Publisher identifies one of the supported publishers for coarse
// DOI-prefix filtering.
type Publisher string

const (
	PublisherACS      Publisher = "ACS"
	PublisherRSC      Publisher = "RSC"
	PublisherWiley    Publisher = "Wiley"
	PublisherElsevier Publisher = "Elsevier"
	PublisherSpringer Publisher = "Springer"
	PublisherScience  Publisher = "Science"
)

// publisherPrefixes maps each publisher to its primary DOI registration
// prefix. Wiley is simplified to its main prefix.
var publisherPrefixes = map[Publisher]string{
	PublisherACS:      "10.1021",
	PublisherRSC:      "10.1039",
	PublisherWiley:    "10.1002",
	PublisherElsevier: "10.1016",
	PublisherSpringer: "10.1007",
	PublisherScience:  "10.1126",
}

// AllPublishers lists the supported publishers in display order.
var AllPublishers = []Publisher{
	PublisherACS, PublisherRSC, PublisherWiley,
	PublisherElsevier, PublisherSpringer, PublisherScience,
}

// ParsePublisher resolves a case-insensitive publisher name.
func ParsePublisher(name string) (Publisher, error) {
	for _, p := range AllPublishers {
		if strings.EqualFold(name, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown publisher %q (supported: %s)", name, joinPublishers())
}

// doiPrefixes returns the DOI prefixes for the selected publishers.
func doiPrefixes(publishers []Publisher) []string {
	prefixes := make([]string, 0, len(publishers))
	for _, p := range publishers {
		if prefix, ok := publisherPrefixes[p]; ok {
			prefixes = append(prefixes, prefix)
		}
	}
	return prefixes
}

func joinPublishers() string {
	names := make([]string, len(AllPublishers))
	for i, p := range AllPublishers {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
