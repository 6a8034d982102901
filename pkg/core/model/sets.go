package model

import (
	"slices"
	"sort"
	"strings"
)

// NameSet is a set of station or role names. A nil NameSet is empty.
type NameSet map[string]bool

func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = true
	}
	return set
}

func (s NameSet) Contains(name string) bool {
	return s[name]
}

// Sorted returns the names in lexical order
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RoleSet is a small sorted, duplicate-free set of roles
type RoleSet []Role

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, 0, len(roles))
	for _, role := range roles {
		if !slices.Contains(set, role) {
			set = append(set, role)
		}
	}
	slices.Sort(set)
	return set
}

func (s RoleSet) Contains(role Role) bool {
	return slices.Contains(s, role)
}

// ContainsAll returns true if every role in other is also in s
func (s RoleSet) ContainsAll(other RoleSet) bool {
	for _, role := range other {
		if !s.Contains(role) {
			return false
		}
	}
	return true
}

// With returns a copy of s with role added
func (s RoleSet) With(role Role) RoleSet {
	return NewRoleSet(append(slices.Clone(s), role)...)
}

// Without returns a copy of s with role removed
func (s RoleSet) Without(role Role) RoleSet {
	result := make(RoleSet, 0, len(s))
	for _, r := range s {
		if r != role {
			result = append(result, r)
		}
	}
	return result
}

func (s RoleSet) Equal(other RoleSet) bool {
	return slices.Equal(NewRoleSet(s...), NewRoleSet(other...))
}

func (s RoleSet) Strings() []string {
	names := make([]string, len(s))
	for i, role := range s {
		names[i] = string(role)
	}
	return names
}

func (s RoleSet) String() string {
	return strings.Join(s.Strings(), "+")
}
