package world

// ZenithResolution records how the zenith set was chosen.
type ZenithResolution uint8

const (
	ZenithNone      ZenithResolution = iota // no object gets zenith treatment
	ZenithFlagged                           // explicit is_zenith flags in the payload
	ZenithNameMatch                         // exact name match against the reference
	ZenithFallback                          // highest-priority star
)

func (r ZenithResolution) String() string {
	switch r {
	case ZenithFlagged:
		return "flagged"
	case ZenithNameMatch:
		return "name-match"
	case ZenithFallback:
		return "fallback"
	default:
		return "none"
	}
}

// ResolveZenith computes the canonical zenith set once per payload.
//
// Explicitly flagged objects always count. Otherwise, when a reference is given, the
// first star whose name matches exactly wins; failing that the highest-priority
// object of type star is used (first one on ties). Without a reference and without
// flags the set is empty.
func ResolveZenith(objects []CelestialObject, flagged []ObjectID, ref *ZenithReference) (ZenithSet, ZenithResolution) {
	set := ZenithSet{}
	for _, id := range flagged {
		if id >= 0 && int(id) < len(objects) {
			set[id] = struct{}{}
		}
	}
	if len(set) > 0 {
		return set, ZenithFlagged
	}
	if ref == nil {
		return set, ZenithNone
	}

	if ref.Name != "" {
		for i := range objects {
			if objects[i].Type == TypeStar && objects[i].Name == ref.Name {
				set[ObjectID(i)] = struct{}{}
				return set, ZenithNameMatch
			}
		}
	}

	best := NoObject
	for i := range objects {
		if objects[i].Type != TypeStar {
			continue
		}
		if best == NoObject || objects[i].Priority > objects[best].Priority {
			best = ObjectID(i)
		}
	}
	if best == NoObject {
		return set, ZenithNone
	}
	set[best] = struct{}{}
	return set, ZenithFallback
}
