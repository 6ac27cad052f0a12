package access

import (
	"errors"
	"strings"
)

// Resource names an API collection.
type Resource string

const (
	Businesses     Resource = "businesses"
	Users          Resource = "users"
	Events         Resource = "events"
	Reviews        Resource = "reviews"
	Inventory      Resource = "inventory"
	Messages       Resource = "messages"
	BusinessImages Resource = "business-images"
	Signup         Resource = "signup"
	Login          Resource = "login"
	TokenRefresh   Resource = "token-refresh"
)

// Action is what the caller wants to do with a resource.
type Action string

const (
	List      Action = "list"
	Retrieve  Action = "retrieve"
	Create    Action = "create"
	Update    Action = "update"
	Destroy   Action = "destroy"
	OwnerList Action = "owner-list"
	Import    Action = "import"
	Export    Action = "export"
)

// Requirement is the condition a caller must meet for an action.
type Requirement int

const (
	AllowAny Requirement = iota
	Authenticated
	BusinessOwnerFlag
	// ObjectOwner is checked twice: Check only demands authentication,
	// and the handler calls CheckOwner once the record is loaded.
	ObjectOwner
)

func (r Requirement) String() string {
	switch r {
	case AllowAny:
		return "anyone"
	case Authenticated:
		return "authenticated"
	case BusinessOwnerFlag:
		return "business owner"
	case ObjectOwner:
		return "object owner"
	}
	return "unknown"
}

func (r Requirement) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Rule grants an action on a resource to callers meeting Requires.
type Rule struct {
	Resource  Resource    `json:"resource"`
	Action    Action      `json:"action"`
	Requires  Requirement `json:"requires"`
	Throttled bool        `json:"throttled"`
}

// rules is the authoritative access policy.
var rules = []Rule{
	{Resource: Businesses, Action: List, Requires: AllowAny},
	{Resource: Businesses, Action: Retrieve, Requires: AllowAny},
	{Resource: Businesses, Action: Create, Requires: BusinessOwnerFlag},
	{Resource: Businesses, Action: Update, Requires: ObjectOwner},
	{Resource: Businesses, Action: Destroy, Requires: ObjectOwner},
	{Resource: Businesses, Action: OwnerList, Requires: Authenticated},

	// User records are readable by anyone. Not confirmed as intended.
	{Resource: Users, Action: List, Requires: AllowAny},
	{Resource: Users, Action: Retrieve, Requires: AllowAny},
	{Resource: Users, Action: Create, Requires: Authenticated},
	{Resource: Users, Action: Update, Requires: ObjectOwner},
	{Resource: Users, Action: Destroy, Requires: ObjectOwner},

	{Resource: Inventory, Action: Import, Requires: ObjectOwner},
	{Resource: Inventory, Action: Export, Requires: AllowAny},

	{Resource: Signup, Action: Create, Requires: AllowAny, Throttled: true},
	{Resource: Login, Action: Create, Requires: AllowAny, Throttled: true},
	{Resource: TokenRefresh, Action: Create, Requires: AllowAny},
}

// Child resources of a business share the default CRUD rules.
func init() {
	for _, res := range []Resource{Events, Reviews, Inventory, Messages, BusinessImages} {
		rules = append(rules,
			Rule{Resource: res, Action: List, Requires: AllowAny},
			Rule{Resource: res, Action: Retrieve, Requires: AllowAny},
			Rule{Resource: res, Action: Create, Requires: Authenticated},
			Rule{Resource: res, Action: Update, Requires: Authenticated},
			Rule{Resource: res, Action: Destroy, Requires: Authenticated},
		)
	}
	ruleMap = make(map[ruleKey]Rule, len(rules))
	for _, r := range rules {
		ruleMap[ruleKey{r.Resource, r.Action}] = r
	}
}

type ruleKey struct {
	Resource Resource
	Action   Action
}

var ruleMap map[ruleKey]Rule

// Lookup returns the rule for an action, if one exists.
func Lookup(res Resource, act Action) (Rule, bool) {
	r, ok := ruleMap[ruleKey{res, act}]
	return r, ok
}

// Rules returns the full policy for documentation.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Caller is the identity behind a request. The zero value is anonymous.
type Caller struct {
	UserID          uint
	Username        string
	IsBusinessOwner bool
}

func (c Caller) Authenticated() bool { return c.UserID != 0 }

var (
	ErrUnauthenticated = errors.New("access: authentication required")
	ErrForbidden       = errors.New("access: forbidden")
)

// Message returns the text shown to the caller for an access error.
func Message(err error) string {
	var denied *DeniedError
	switch {
	case errors.As(err, &denied):
		return denied.Message
	case errors.Is(err, ErrUnauthenticated):
		return "Authentication credentials were not provided."
	}
	return "You do not have permission to perform this action."
}

// DeniedError carries the message shown to a caller who is known but not allowed.
type DeniedError struct {
	Message string
}

func (e *DeniedError) Error() string { return e.Message }

func (e *DeniedError) Is(target error) bool { return target == ErrForbidden }

const (
	msgNotBusinessOwner = "You must be a registered business owner to create a business."
	msgNotObjectOwner   = "You do not own this business."
	msgNotSelf          = "You can only change your own account."
)

// Check decides whether caller may attempt act on res. Unknown pairs are denied.
func Check(res Resource, act Action, caller Caller) error {
	rule, ok := Lookup(res, act)
	if !ok {
		return &DeniedError{Message: "Action " + string(act) + " is not available on " + string(res) + "."}
	}
	switch rule.Requires {
	case AllowAny:
		return nil
	case Authenticated, ObjectOwner:
		if !caller.Authenticated() {
			return ErrUnauthenticated
		}
		return nil
	case BusinessOwnerFlag:
		if !caller.Authenticated() {
			return ErrUnauthenticated
		}
		if !caller.IsBusinessOwner {
			return &DeniedError{Message: msgNotBusinessOwner}
		}
		return nil
	}
	return ErrForbidden
}

// CheckOwner is the object-level check for records owned by a user.
func CheckOwner(caller Caller, ownerID uint) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	if caller.UserID != ownerID {
		return &DeniedError{Message: msgNotObjectOwner}
	}
	return nil
}

// CheckSelf is the object-level check for a user account: only the account
// holder may change or delete it.
func CheckSelf(caller Caller, userID uint) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	if caller.UserID != userID {
		return &DeniedError{Message: msgNotSelf}
	}
	return nil
}

// Describe renders a rule as a single readable line.
func Describe(r Rule) string {
	var b strings.Builder
	b.WriteString(string(r.Action))
	b.WriteString(" ")
	b.WriteString(string(r.Resource))
	b.WriteString(": ")
	b.WriteString(r.Requires.String())
	if r.Throttled {
		b.WriteString(" (rate limited)")
	}
	return b.String()
}
