// Package collada models COLLADA 1.4.1 elements and writes them as
// schema-ordered XML.
//
// Optional attributes are held in slots; element writers emit only the
// slots that were set, in the order the COLLADA schema declares.
package collada

// Namespace and version written on the <COLLADA> root.
const (
	Namespace = "http://www.collada.org/2005/11/COLLADASchema"
	Version   = "1.4.1"
)

// Element and attribute names.
const (
	tagCOLLADA             = "COLLADA"
	tagAsset               = "asset"
	tagContributor         = "contributor"
	tagAuthor              = "author"
	tagAuthoringTool       = "authoring_tool"
	tagComments            = "comments"
	tagCopyright           = "copyright"
	tagCreated             = "created"
	tagKeywords            = "keywords"
	tagModified            = "modified"
	tagSubject             = "subject"
	tagTitle               = "title"
	tagUnit                = "unit"
	tagUpAxis              = "up_axis"
	tagLibraryCameras      = "library_cameras"
	tagCamera              = "camera"
	tagOptics              = "optics"
	tagTechniqueCommon     = "technique_common"
	tagTechnique           = "technique"
	tagExtra               = "extra"
	tagXFov                = "xfov"
	tagYFov                = "yfov"
	tagXMag                = "xmag"
	tagYMag                = "ymag"
	tagAspectRatio         = "aspect_ratio"
	tagZNear               = "znear"
	tagZFar                = "zfar"
	tagLibraryVisualScenes = "library_visual_scenes"
	tagVisualScene         = "visual_scene"
	tagNode                = "node"
	tagInstanceCamera      = "instance_camera"
	tagScene               = "scene"
	tagInstanceVisualScene = "instance_visual_scene"

	attrID      = "id"
	attrName    = "name"
	attrSID     = "sid"
	attrURL     = "url"
	attrProfile = "profile"
	attrMeter   = "meter"
	attrXMLNS   = "xmlns"
	attrVersion = "version"
)
