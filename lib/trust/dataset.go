package trust

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/go-dtn/go-moby/lib/util/logger"
)

var log = logger.GetLogger()

// Record is one parsed line of the trust-elements dataset: a user, its typed
// contact list with per-contact communication counts, and the highest count
// toward any contact.
type Record struct {
	UserID int
	// Types maps global contact id -> participates in the protocol.
	Types map[string]bool
	// Communications maps global contact id -> seeded communication count.
	Communications map[string]int
	Highest        int
}

// LoadDataset parses the trust-elements file at path. Each record reads
//
//	userID,mobyContactList,nonMobyContactList,highestNbCommunications
//
// where a contact list is a |-separated sequence of contactId=count pairs.
// Moby contact ids are prefixed with groupID to form global contact ids;
// non-Moby ids are used as-is. '#' comment lines and blank lines are skipped.
// Any malformed field is fatal and identifies the offending line.
func LoadDataset(path, groupID string) (map[int]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.Errorf("opening trust dataset: %w", err)
	}
	defer f.Close()

	records := make(map[int]*Record)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := parseRecord(line, groupID)
		if err != nil {
			return nil, oops.Errorf("trust dataset %s:%d: %w", path, lineNo, err)
		}
		if _, dup := records[rec.UserID]; dup {
			return nil, oops.Errorf("trust dataset %s:%d: duplicate user %d", path, lineNo, rec.UserID)
		}
		records[rec.UserID] = rec
	}
	if err := scanner.Err(); err != nil {
		return nil, oops.Errorf("reading trust dataset %s: %w", path, err)
	}

	log.WithField("users", len(records)).Debug("loaded trust dataset")
	return records, nil
}

func parseRecord(line, groupID string) (*Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return nil, oops.Errorf("want 4 fields, got %d in %q", len(fields), line)
	}

	userID, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, oops.Errorf("can't parse user id %q", fields[0])
	}
	highest, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return nil, oops.Errorf("can't parse highest communication count %q", fields[3])
	}

	rec := &Record{
		UserID:         userID,
		Types:          make(map[string]bool),
		Communications: make(map[string]int),
		Highest:        highest,
	}
	if err := parseContactList(fields[1], groupID, true, rec); err != nil {
		return nil, err
	}
	if err := parseContactList(fields[2], "", false, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseContactList reads a |-separated list of contactId=count pairs into
// rec, prefixing each id with prefix. An empty list is legal: a user may have
// no contacts of one type.
func parseContactList(raw, prefix string, isMoby bool, rec *Record) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, pair := range strings.Split(raw, "|") {
		id, count, ok := strings.Cut(pair, "=")
		if !ok {
			return oops.Errorf("can't parse contact entry %q", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return oops.Errorf("can't parse integer in %q", pair)
		}
		contact := prefix + strings.TrimSpace(id)
		rec.Types[contact] = isMoby
		rec.Communications[contact] = n
	}
	return nil
}

// ComputeElements derives each user's initial trust elements from the full
// dataset: for every Moby contact, the cardinalities of the pair's common
// Moby and non-Moby contact sets over the complete (uncapped) lists; for
// non-Moby contacts the commons stay zero because the protocol learns nothing
// about non-participants' contact sets. Communication counts come straight
// from the dataset.
func ComputeElements(records map[int]*Record, groupID string) (map[int]*Store, error) {
	stores := make(map[int]*Store, len(records))
	for userID, rec := range records {
		store := NewStore()
		store.SetHighestCommunications(rec.Highest)

		userMoby, userNonMoby := splitByType(rec.Types)
		for contact, isMoby := range rec.Types {
			if isMoby {
				peerID, err := strconv.Atoi(strings.TrimPrefix(contact, groupID))
				if err != nil {
					return nil, oops.Errorf("can't parse integer in contact id %q", contact)
				}
				if peer, ok := records[peerID]; ok {
					peerMoby, peerNonMoby := splitByType(peer.Types)
					store.SetCommonMoby(contact, intersectionSize(userMoby, peerMoby))
					store.SetCommonNonMoby(contact, intersectionSize(userNonMoby, peerNonMoby))
				}
			}
			store.SeedCommunications(contact, rec.Communications[contact])
		}
		stores[userID] = store
	}
	return stores, nil
}

func splitByType(types map[string]bool) (moby, nonMoby map[string]struct{}) {
	moby = make(map[string]struct{})
	nonMoby = make(map[string]struct{})
	for contact, isMoby := range types {
		if isMoby {
			moby[contact] = struct{}{}
		} else {
			nonMoby[contact] = struct{}{}
		}
	}
	return moby, nonMoby
}
