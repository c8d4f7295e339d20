package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

type ObjectStorageInput struct {
	ResourceLabel     string
	BucketName        string
	Location          string
	VersioningEnabled bool
	Environment       string
}

// ObjectStorageMainTf generates the primary resource file for an object-storage
// bundle: the bucket, an IAM binding for object readers, and the bucket URL output.
func ObjectStorageMainTf(in ObjectStorageInput) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	bucketBlock := rootBody.AppendNewBlock("resource", []string{"google_storage_bucket", in.ResourceLabel})
	bucketBody := bucketBlock.Body()
	bucketBody.SetAttributeValue("name", cty.StringVal(in.BucketName))
	bucketBody.SetAttributeValue("location", cty.StringVal(in.Location))
	bucketBody.SetAttributeValue("uniform_bucket_level_access", cty.BoolVal(true))
	bucketBody.AppendNewline()

	versioningBlock := bucketBody.AppendNewBlock("versioning", nil)
	versioningBlock.Body().SetAttributeValue("enabled", cty.BoolVal(in.VersioningEnabled))
	bucketBody.AppendNewline()

	bucketBody.SetAttributeValue("labels", cty.ObjectVal(map[string]cty.Value{
		"environment": cty.StringVal(in.Environment),
		"managed_by":  cty.StringVal("terrascribe"),
	}))
	rootBody.AppendNewline()

	iamLabel := in.ResourceLabel + "_viewer"
	iamBlock := rootBody.AppendNewBlock("resource", []string{"google_storage_bucket_iam_member", iamLabel})
	iamBody := iamBlock.Body()
	iamBody.SetAttributeRaw("bucket", TokensForResourceReference(
		fmt.Sprintf("google_storage_bucket.%s.name", in.ResourceLabel)))
	iamBody.SetAttributeValue("role", cty.StringVal("roles/storage.objectViewer"))
	iamBody.SetAttributeRaw("member", TokensForStringTemplate(
		"projectViewer:${var.project_id}"))
	rootBody.AppendNewline()

	urlOutputBlock := rootBody.AppendNewBlock("output", []string{in.ResourceLabel + "_url"})
	urlOutputBlock.Body().SetAttributeRaw("value", TokensForResourceReference(
		fmt.Sprintf("google_storage_bucket.%s.url", in.ResourceLabel)))

	return string(f.Bytes())
}
