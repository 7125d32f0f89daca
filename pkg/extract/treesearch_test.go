package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stepOne = "Vispa samman ägg och mjölk i en djup skål tills smeten är helt slät och utan klumpar. Låt smeten vila i kylen i minst tio minuter."
	stepTwo = "Stek pannkakorna i smör på medelhög värme tills de fått fin färg på båda sidor. Vänd dem försiktigt med en stekspade och servera direkt."
)

const (
	pageHeader = `<header><h1>Pannkakor</h1><p>Ett klassiskt recept från mormor som alltid uppskattas vid söndagsfrukosten</p></header>`
	pageFooter = `<footer>Om oss Kontakt Nyhetsbrev</footer>`
)

func TestTraverseIngredients(t *testing.T) {
	doc := docFromHTML(t, `<html><head><title>Pannkakor</title></head><body>
		`+pageHeader+`
		<ul class="ingredient-list"><li>2 dl mjölk</li><li>1 ägg</li></ul>
		`+pageFooter+`
	</body></html>`)

	ingredients, err := traverseIngredients(docRoot(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"2 dl mjölk", "1 ägg"}, ingredients)
}

func TestTraverseIngredients_SingleCandidate(t *testing.T) {
	// A lone ingredient row collapses into one distinct-content candidate;
	// no ancestor pair can be formed.
	doc := docFromHTML(t, `<html><body>
		`+pageHeader+`
		<ul class="ingredient-list"><li>2 dl mjölk</li></ul>
		`+pageFooter+`
	</body></html>`)

	_, err := traverseIngredients(docRoot(doc))
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
}

func TestTraverseIngredients_NothingScores(t *testing.T) {
	doc := docFromHTML(t, `<html><body><p>bara prosa</p></body></html>`)

	_, err := traverseIngredients(docRoot(doc))
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
}

func TestTraverseInstructions(t *testing.T) {
	doc := docFromHTML(t, `<html><head><title>Pannkakor</title></head><body>
		`+pageHeader+`
		<ol><li>`+stepOne+`</li><li>`+stepTwo+`</li></ol>
		`+pageFooter+`
	</body></html>`)

	instructions, err := traverseInstructions(docRoot(doc), []string{"2 dl mjölk", "1 ägg"})
	require.NoError(t, err)

	// The subtree flattening visits the list element itself first, so the
	// concatenated steps lead the result.
	assert.Equal(t, []string{stepOne + " " + stepTwo, stepOne, stepTwo}, instructions)
}

func TestTraverseInstructions_IngredientCrossCheck(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		`+pageHeader+`
		<ol><li>`+stepOne+`</li><li>`+stepTwo+`</li></ol>
		`+pageFooter+`
	</body></html>`)

	// An already-extracted ingredient that contains a whole step verbatim
	// must knock that step out of the instruction list.
	instructions, err := traverseInstructions(docRoot(doc), []string{stepTwo})
	require.NoError(t, err)

	assert.NotContains(t, instructions, stepTwo)
	assert.Contains(t, instructions, stepOne)
}

func TestLowestCommonAncestor_ListCorrection(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<ul><li><span>2 dl mjölk</span><span>1 tsk salt</span></li><li>1 ägg</li></ul>
	</body></html>`)

	spans := doc.Find("span").Nodes
	require.Len(t, spans, 2)

	// The raw common ancestor of the two spans is their shared li; the
	// correction walks up to the containing list.
	lca, err := lowestCommonAncestor(spans[0], spans[1])
	require.NoError(t, err)
	assert.Equal(t, "ul", tagName(lca))
	assert.NotContains(t, []string{"li", "tr", "td", "p", "span"}, tagName(lca))
}

func TestIsAncestor(t *testing.T) {
	doc := docFromHTML(t, `<html><body><ul><li>ett</li></ul></body></html>`)
	ul := doc.Find("ul").Nodes[0]
	li := doc.Find("li").Nodes[0]

	assert.True(t, isAncestor(ul, li))
	assert.True(t, isAncestor(ul, ul))
	assert.False(t, isAncestor(li, ul))
}

func TestDedupeByText(t *testing.T) {
	// A wrapper node and its sole child render identical text and must
	// collapse to one candidate, keeping the wrapper seen first.
	doc := docFromHTML(t, `<html><body><ul><li>2 dl mjölk</li></ul></body></html>`)
	ul := doc.Find("ul").Nodes[0]
	li := doc.Find("li").Nodes[0]

	unique := dedupeByText([]scoredNode{{node: ul, score: 0.9}, {node: li, score: 0.8}})
	require.Len(t, unique, 1)
	assert.Equal(t, ul, unique[0].node)
}

func TestFindTwoUniqueEntries_TieBreaksInTraversalOrder(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<ul><li>första raden</li><li>andra raden</li><li>tredje raden</li></ul>
	</body></html>`)
	lis := doc.Find("li").Nodes
	require.Len(t, lis, 3)

	// All candidates tie, so the second-highest score equals the maximum
	// and the first two in document order win.
	n1, n2, err := findTwoUniqueEntries([]scoredNode{
		{node: lis[0], score: 0.7},
		{node: lis[1], score: 0.7},
		{node: lis[2], score: 0.7},
	})
	require.NoError(t, err)
	assert.Equal(t, lis[0], n1)
	assert.Equal(t, lis[1], n2)
}

func TestFindTwoUniqueEntries_SecondHighestFloor(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<ul><li>första raden</li><li>andra raden</li><li>tredje raden</li></ul>
	</body></html>`)
	lis := doc.Find("li").Nodes

	// The low scorer sits below the second-highest score and is excluded.
	n1, n2, err := findTwoUniqueEntries([]scoredNode{
		{node: lis[0], score: 0.65},
		{node: lis[1], score: 0.9},
		{node: lis[2], score: 0.8},
	})
	require.NoError(t, err)
	assert.Equal(t, lis[1], n1)
	assert.Equal(t, lis[2], n2)
}

func TestIsPartOfIngredients(t *testing.T) {
	ingredients := []string{"2 dl mjölk", "1 ägg"}

	assert.True(t, isPartOfIngredients("2 dl mjölk", ingredients))
	assert.True(t, isPartOfIngredients("mjölk", ingredients))
	assert.True(t, isPartOfIngredients("häll i 2 dl mjölk och rör om", ingredients))
	assert.False(t, isPartOfIngredients("grädda i ugnen", ingredients))
}
