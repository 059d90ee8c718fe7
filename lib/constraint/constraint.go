// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import (
	"fmt"
	"strings"

	"github.com/argsmith/argsmith/lib/argdef"
	"github.com/argsmith/argsmith/lib/usage"
)

// Validate checks every constraint along the matched path against the
// final merged values and returns the first violation in declaration
// order: required arguments, then per-argument conflicts, then group
// rules, then dependencies, walking commands root to leaf.
func Validate(path []*argdef.Command, values *argdef.ValueSet) error {
	for _, command := range path {
		for _, arg := range command.Args {
			if err := checkRequired(command, arg, values); err != nil {
				return err
			}
		}
	}
	for _, command := range path {
		for _, arg := range command.Args {
			if err := checkConflicts(command, arg, values); err != nil {
				return err
			}
		}
	}
	for _, command := range path {
		for _, group := range command.Groups {
			if err := checkGroup(command, group, values); err != nil {
				return err
			}
		}
	}
	for _, command := range path {
		for _, arg := range command.Args {
			if err := checkDependencies(command, arg, values); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRequired(command *argdef.Command, arg *argdef.Argument, values *argdef.ValueSet) error {
	if !arg.Required || values.Has(arg.Name) {
		return nil
	}
	return &usage.Error{
		Kind:    usage.MissingRequiredArgument,
		Command: command.FullName(),
		Subject: arg.DisplayName(),
		Detail:  "no value from any source",
	}
}

// checkConflicts enforces mutual exclusion. The relation is symmetric:
// declaring it on one side is sufficient, so the declaring side is
// checked against every target it names.
func checkConflicts(command *argdef.Command, arg *argdef.Argument, values *argdef.ValueSet) error {
	if len(arg.ConflictsWith) == 0 || !values.Has(arg.Name) {
		return nil
	}
	for _, name := range arg.ConflictsWith {
		if !values.Has(name) {
			continue
		}
		other, _ := values.Get(name)
		return &usage.Error{
			Kind:    usage.ArgumentConflict,
			Command: command.FullName(),
			Subject: arg.DisplayName(),
			Detail: fmt.Sprintf("cannot be used together with %s (%s via %s)",
				other.Arg.DisplayName(), describeSource(values, arg.Name), describeSource(values, name)),
		}
	}
	return nil
}

func checkGroup(command *argdef.Command, group *argdef.Group, values *argdef.ValueSet) error {
	var present []string
	for _, member := range group.ResolvedMembers() {
		if values.Has(member.Name) {
			present = append(present, member.DisplayName())
		}
	}

	if group.Required && len(present) == 0 {
		var members []string
		for _, member := range group.ResolvedMembers() {
			members = append(members, member.DisplayName())
		}
		return &usage.Error{
			Kind:    usage.GroupViolation,
			Command: command.FullName(),
			Subject: group.ID,
			Detail:  "one of " + strings.Join(members, ", ") + " is required",
		}
	}

	if !group.Multiple && len(present) > 1 {
		return &usage.Error{
			Kind:    usage.GroupViolation,
			Command: command.FullName(),
			Subject: group.ID,
			Detail:  strings.Join(present, ", ") + " are mutually exclusive",
		}
	}
	return nil
}

func checkDependencies(command *argdef.Command, arg *argdef.Argument, values *argdef.ValueSet) error {
	if len(arg.Requires) == 0 || !values.Has(arg.Name) {
		return nil
	}
	for _, name := range arg.Requires {
		if values.Has(name) {
			continue
		}
		display := name
		if missing, ok := values.Get(name); ok {
			display = missing.Arg.DisplayName()
		}
		return &usage.Error{
			Kind:    usage.MissingDependency,
			Command: command.FullName(),
			Subject: arg.DisplayName(),
			Detail:  fmt.Sprintf("requires %s to be present", display),
		}
	}
	return nil
}

// describeSource names the provenance of a present value for conflict
// messages, e.g. "command line" or "config file".
func describeSource(values *argdef.ValueSet, name string) string {
	return values.Provenance(name).String()
}
