// internal/compid/doc.go

/*
Package compid provides the instance-qualified names under which rendered
components are known to a renderer and addressed by actions.

The canonical format is

	name[1][2]           component "name", instance [1, 2]
	__cp:child(copy)[3]  component "child" shown as a child of copy "copy"
	seq#2                virtual member 2 of batch group "seq"

Format and Parse round-trip, so a name handed out by the Render API can be
sent back unchanged in an action.
*/
package compid
