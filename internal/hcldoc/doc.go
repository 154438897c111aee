/*
Package hcldoc loads documents written in HCL into a model.Tree.

Every block is a component: the block type is the component type and the
optional label is its name. Unlabeled blocks are named after their type and
position, such as _p2. Nested blocks are children, in order.

	document "doc" {
	  p "intro" {
	    children = ["The answer is ", n, "."]
	    number "n" { children = "40 + 2" }
	  }
	  point "pt" { coords = [3, 4] }
	  number "x" { copy = pt.coords[1] }
	  conditionalContent "big" {
	    condition = "${n} > 10"
	    text { children = "large" }
	  }
	}

Two attributes are reserved:

  - children lists literal text and references to nested blocks in the
    order they appear. Nested blocks it does not mention follow in block
    order.
  - copy sets the copy source: a component (pt), a state variable
    (pt.coords), an element (pt.coords[1]), a computed element
    (pt.coords[n.value]) or the current item of a map (source(m)). The
    string form "$pt.coords[1]" is accepted as well. A whole-component copy
    of a repeated component picks its repetition with copy_instance.

Any other attribute is kept as literal text pieces and component references,
so "${n} > 10" becomes the text " > 10" after a reference to n.
*/
package hcldoc
