/*
Package multisig implements threshold authorization of actions.

A group is an ordered set of owners and a threshold. Any owner can propose an
action on behalf of the group. The proposal collects one approval per owner
and becomes executable once the number of approvals reaches the threshold.
Executing hands the stored action to an Executor exactly once.

Reconfiguring a group replaces its owners and threshold and increments the
group epoch. Every proposal remembers the epoch it was created in and cannot
be executed once the epoch has changed, so that approvals gathered from an
old owner set never authorize an action of the new one.

This package never verifies signatures. The caller identity is provided by an
x.Authenticator.
*/
package multisig
