package match

import "strings"

// DefaultDirectory is the built-in company -> email-domain seed. Keys are
// lower-case display names, values bare domains. Deployments extend it via
// config; the sqlite cache layers discovered domains on top.
func DefaultDirectory() map[string]string {
	return map[string]string{
		"goldman sachs":            "gs.com",
		"blackrock":                "blackrock.com",
		"morgan stanley":           "morganstanley.com",
		"jpmorgan":                 "jpmorgan.com",
		"jp morgan":                "jpmorgan.com",
		"j.p. morgan":              "jpmorgan.com",
		"bank of america":          "bankofamerica.com",
		"citigroup":                "citi.com",
		"citi":                     "citi.com",
		"citadel":                  "citadel.com",
		"kkr":                      "kkr.com",
		"blackstone":               "blackstone.com",
		"carlyle":                  "carlyle.com",
		"apollo":                   "apollo.com",
		"bain capital":             "baincapital.com",
		"tpg":                      "tpg.com",
		"bridgewater":              "bwater.com",
		"two sigma":                "twosigma.com",
		"renaissance technologies": "rentec.com",
		"de shaw":                  "deshaw.com",
		"d.e. shaw":                "deshaw.com",
		"point72":                  "point72.com",
		"millennium":               "mlp.com",
		"balyasny":                 "bamfunds.com",
		"alliance bernstein":       "alliancebernstein.com",
		"lazard":                   "lazard.com",
		"evercore":                 "evercore.com",
		"moelis":                   "moelis.com",
		"piper sandler":            "pipersandler.com",
		"houlihan lokey":           "hl.com",
		"jefferies":                "jefferies.com",
		"raymond james":            "raymondjames.com",
		"wells fargo":              "wellsfargo.com",
		"ubs":                      "ubs.com",
		"credit suisse":            "credit-suisse.com",
		"deutsche bank":            "db.com",
		"barclays":                 "barclays.com",
		"hsbc":                     "hsbc.com",
		"nomura":                   "nomura.com",
		"mizuho":                   "mizuhogroup.com",
		"macquarie":                "macquarie.com",
		"cowen":                    "cowen.com",
		"pimco":                    "pimco.com",
		"vanguard":                 "vanguard.com",
		"fidelity":                 "fidelity.com",
		"t. rowe price":            "troweprice.com",
		"t rowe price":             "troweprice.com",
		"wellington":               "wellington.com",
		"neuberger berman":         "nb.com",
		"nuveen":                   "nuveen.com",
		"invesco":                  "invesco.com",
		"franklin templeton":       "franklintempleton.com",
		"legg mason":               "leggmason.com",
		"harris associates":        "harrisassoc.com",
		"advent international":     "adventinternational.com",
		"warburg pincus":           "warburgpincus.com",
		"general atlantic":         "ga.com",
		"hellman friedman":         "hf.com",
		"silver lake":              "silverlake.com",
		"vista equity":             "vistaequitypartners.com",
		"insight partners":         "insightpartners.com",
		"tiger global":             "tigerglobal.com",
		"coatue":                   "coatue.com",
	}
}

// ResolveDomain tries each name candidate in order against the directory:
// exact key match, then substring containment, then token overlap. The first
// candidate producing a hit scoring at or above the threshold wins.
func (m *CompanyMatcher) ResolveDomain(candidates ...string) (string, bool) {
	for _, cand := range candidates {
		key := strings.ToLower(strings.Join(strings.Fields(cand), " "))
		if key == "" {
			continue
		}
		if d, ok := m.dir[key]; ok {
			return d, true
		}
		if d, score := m.containmentHit(key); score >= m.threshold {
			return d, true
		}
		if d, score := m.overlapHit(key); score >= m.threshold {
			return d, true
		}
	}
	return "", false
}

// containmentHit scores each directory key by two-way substring containment:
// 100 * len(shorter) / len(longer). Distance-free on purpose; edit distance
// is too eager with short finance names.
func (m *CompanyMatcher) containmentHit(key string) (string, int) {
	var bestDomain string
	bestScore := -1
	for known, domain := range m.dir {
		var score int
		switch {
		case strings.Contains(key, known):
			score = 100 * len(known) / len(key)
		case strings.Contains(known, key):
			score = 100 * len(key) / len(known)
		default:
			continue
		}
		if score > bestScore || (score == bestScore && domain < bestDomain) {
			bestScore, bestDomain = score, domain
		}
	}
	return bestDomain, bestScore
}

func (m *CompanyMatcher) overlapHit(key string) (string, int) {
	keyToks := m.Tokens(key)
	if len(keyToks) == 0 {
		return "", -1
	}
	var bestDomain string
	bestScore := -1
	for known, domain := range m.dir {
		knownToks := m.Tokens(known)
		if len(knownToks) == 0 {
			continue
		}
		overlap := tokenOverlap(keyToks, knownToks)
		if overlap == 0 {
			continue
		}
		score := 100 * overlap / min(len(keyToks), len(knownToks))
		if score > bestScore || (score == bestScore && domain < bestDomain) {
			bestScore, bestDomain = score, domain
		}
	}
	return bestDomain, bestScore
}
